package v1

import (
	"net/http"
	"strconv"
	"time"

	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	r.POST("/applications/:id/interview", handler.ScheduleInterview)
	r.GET("/offers/:offerId/interviews", handler.ListOfferInterviews)
	r.GET("/candidates/interviews", handler.GetMyInterviews)
	r.GET("/interviews", handler.ListInterviewsByDateRange)
}

// ScheduleInterviewRequest is the request payload for scheduling an interview
type ScheduleInterviewRequest struct {
	Date time.Time `json:"date" binding:"required"`
	Note string    `json:"note"`
}

// ScheduleInterview godoc
// @Summary      Schedule an interview
// @Description  Create an interview with a generated meeting link and move the application to interview_scheduled (owner only)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      ScheduleInterviewRequest  true  "Interview data"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/interview [post]
// @Security     BearerAuth
func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can schedule interviews"))
		return
	}

	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if req.Date.Before(time.Now()) {
		c.Error(apperror.BadRequest("Interview date must be in the future"))
		return
	}

	interview, application, err := h.interviewUC.Schedule(c.Request.Context(), userID, applicationID, req.Date, req.Note)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled successfully", gin.H{
		"interview":   interview,
		"application": application,
	})
}

// ListOfferInterviews godoc
// @Summary      List interviews for an offer
// @Tags         interviews
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200      {object}  response.Response{data=[]domain.Interview}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /offers/{offerId}/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListOfferInterviews(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can view offer interviews"))
		return
	}

	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	interviews, err := h.interviewUC.ListByOffer(c.Request.Context(), userID, offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetMyInterviews godoc
// @Summary      Get my interviews
// @Description  All interviews scheduled for the current candidate
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Interview}
// @Failure      401  {object}  response.Response
// @Router       /candidates/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetMyInterviews(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	interviews, err := h.interviewUC.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// ListInterviewsByDateRange godoc
// @Summary      List interviews in a date range
// @Description  Agenda view for the company's interviews, optionally filtered to one offer
// @Tags         interviews
// @Produce      json
// @Param        from      query     string  true   "Range start (RFC 3339)"
// @Param        to        query     string  true   "Range end (RFC 3339)"
// @Param        offer_id  query     int     false  "Limit to one offer"
// @Success      200       {object}  response.Response{data=[]domain.Interview}
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListInterviewsByDateRange(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can query the interview agenda"))
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid or missing 'from', expected RFC 3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid or missing 'to', expected RFC 3339"))
		return
	}

	var offerID *int64
	if raw := c.Query("offer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid offer_id"))
			return
		}
		offerID = &id
	}

	interviews, err := h.interviewUC.ListByDateRange(c.Request.Context(), userID, from, to, offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}
