package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"
	"matchgo-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDocumentSize = 5 << 20 // 5 MiB per document

var allowedDocumentExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	fileStore     storage.FileStore
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, fileStore storage.FileStore, uploadLimit gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC, fileStore: fileStore}

	offers := r.Group("/offers")
	{
		offers.POST("/:offerId/applications", uploadLimit, handler.Apply)
		offers.GET("/:offerId/applications", handler.ListOfferApplications)
		offers.DELETE("/:offerId/applications", handler.DeleteOfferApplications)
	}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/applications", handler.GetMyApplications)
	}

	applications := r.Group("/applications")
	{
		applications.PUT("/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply to an offer
// @Description  Submit an application with CV and motivation letter (multipart, candidate only)
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        offerId            path      int     true   "Offer ID"
// @Param        cv                 formData  file    true   "CV document (pdf, doc, docx)"
// @Param        motivation_letter  formData  file    true   "Motivation letter (pdf, doc, docx)"
// @Param        linkedin           formData  string  false  "LinkedIn profile URL"
// @Param        github             formData  string  false  "GitHub profile URL"
// @Param        phone_number       formData  string  false  "Phone number"
// @Param        location           formData  string  false  "Location"
// @Param        date_of_birth      formData  string  false  "Date of birth (RFC 3339)"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offers/{offerId}/applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can apply to offers"))
		return
	}

	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	cvKey, err := h.storeDocument(c, "cv", offerID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	letterKey, err := h.storeDocument(c, "motivation_letter", offerID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	in := domain.ApplyInput{
		LinkedIn:    optionalForm(c, "linkedin"),
		GitHub:      optionalForm(c, "github"),
		PhoneNumber: optionalForm(c, "phone_number"),
		Location:    optionalForm(c, "location"),
	}
	if dob := c.PostForm("date_of_birth"); dob != "" {
		parsed, err := time.Parse(time.RFC3339, dob)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid date_of_birth, expected RFC 3339"))
			return
		}
		in.DateOfBirth = &parsed
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), userID, email, offerID, cvKey, letterKey, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// storeDocument validates one uploaded form file and writes it to the file
// store under a fresh key. Returns the key.
func (h *ApplicationHandler) storeDocument(c *gin.Context, field string, offerID int64, userID string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", apperror.BadRequest(fmt.Sprintf("Missing %s file", field))
	}
	if file.Size > maxDocumentSize {
		return "", apperror.BadRequest(fmt.Sprintf("%s exceeds the 5MB limit", field))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedDocumentExts[ext]
	if !ok {
		return "", apperror.BadRequest(fmt.Sprintf("%s must be a pdf, doc or docx file", field))
	}

	if h.fileStore == nil {
		return "", apperror.New(http.StatusServiceUnavailable, "Document storage is not available", nil)
	}

	key := fmt.Sprintf("applications/%d/%s/%s-%s%s", offerID, userID, field, uuid.NewString(), ext)
	return key, h.uploadFile(c, file, key, contentType)
}

func (h *ApplicationHandler) uploadFile(c *gin.Context, file *multipart.FileHeader, key, contentType string) error {
	src, err := file.Open()
	if err != nil {
		return apperror.Internal(err)
	}
	defer src.Close()

	if err := h.fileStore.Upload(c.Request.Context(), key, contentType, src); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func optionalForm(c *gin.Context, field string) *string {
	if v := c.PostForm(field); v != "" {
		return &v
	}
	return nil
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  All applications submitted by the current candidate
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ListOfferApplications godoc
// @Summary      List applications for an offer
// @Description  All applications for an offer, each with the candidate's quiz summary (owner only)
// @Tags         applications
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200      {object}  response.Response{data=[]domain.Application}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /offers/{offerId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListOfferApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can view offer applications"))
		return
	}

	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	applications, err := h.applicationUC.ListByOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateStatusRequest is the request payload for updating application status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending interview_scheduled accepted rejected"`
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Move an application through the status table (owner only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can update application status"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// DeleteOfferApplications godoc
// @Summary      Delete all applications for an offer
// @Description  Bulk-remove an offer's applications, e.g. when closing it (owner only)
// @Tags         applications
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /offers/{offerId}/applications [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) DeleteOfferApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can delete applications"))
		return
	}

	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	count, err := h.applicationUC.DeleteByOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications deleted", gin.H{"deleted": count})
}
