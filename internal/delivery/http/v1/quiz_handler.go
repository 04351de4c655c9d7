package v1

import (
	"net/http"
	"strconv"

	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizUC domain.QuizUsecase
}

// NewQuizHandler registers quiz routes
func NewQuizHandler(r *gin.RouterGroup, quizUC domain.QuizUsecase) {
	handler := &QuizHandler{quizUC: quizUC}

	offers := r.Group("/offers")
	{
		offers.POST("/:offerId/quizzes", handler.CreateQuiz)
		offers.GET("/:offerId/quizzes", handler.ListQuizzes)
		offers.GET("/:offerId/quizzes/random", handler.GetRandomQuiz)
	}

	quizzes := r.Group("/quizzes")
	{
		quizzes.PUT("/:quizId", handler.UpdateQuiz)
		quizzes.PUT("/:quizId/publish", handler.PublishQuiz)
		quizzes.DELETE("/:quizId", handler.DeleteQuiz)
	}
}

// CreateQuizRequest is the request payload for creating a quiz
type CreateQuizRequest struct {
	Title           string `json:"title" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1"`
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Description  Attach a new quiz to an offer (owner only)
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        offerId  path      int                true  "Offer ID"
// @Param        body     body      CreateQuizRequest  true  "Quiz data"
// @Success      201      {object}  response.Response{data=domain.Quiz}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /offers/{offerId}/quizzes [post]
// @Security     BearerAuth
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can create quizzes"))
		return
	}

	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	quiz, err := h.quizUC.Create(c.Request.Context(), userID, offerID, req.Title, req.DurationSeconds)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Quiz created successfully", quiz)
}

// ListQuizzes godoc
// @Summary      List quizzes for an offer
// @Tags         quizzes
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200      {object}  response.Response{data=[]domain.Quiz}
// @Failure      404      {object}  response.Response
// @Router       /offers/{offerId}/quizzes [get]
// @Security     BearerAuth
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	quizzes, err := h.quizUC.ListByOffer(c.Request.Context(), offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quizzes retrieved", quizzes)
}

// GetRandomQuiz godoc
// @Summary      Get a random quiz for an offer
// @Description  Pick one of the offer's quizzes uniformly at random
// @Tags         quizzes
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200      {object}  response.Response{data=domain.Quiz}
// @Failure      404      {object}  response.Response
// @Router       /offers/{offerId}/quizzes/random [get]
// @Security     BearerAuth
func (h *QuizHandler) GetRandomQuiz(c *gin.Context) {
	offerID, err := strconv.ParseInt(c.Param("offerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid offer ID"))
		return
	}

	quiz, err := h.quizUC.GetRandomByOffer(c.Request.Context(), offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quiz retrieved", quiz)
}

// UpdateQuiz godoc
// @Summary      Update a quiz
// @Description  Partially update a quiz's title, duration or active flag (owner only)
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        quizId  path      int               true  "Quiz ID"
// @Param        body    body      domain.QuizPatch  true  "Fields to update"
// @Success      200     {object}  response.Response{data=domain.Quiz}
// @Failure      403     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /quizzes/{quizId} [put]
// @Security     BearerAuth
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can update quizzes"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	var patch domain.QuizPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	quiz, err := h.quizUC.Update(c.Request.Context(), userID, quizID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quiz updated successfully", quiz)
}

// PublishQuiz godoc
// @Summary      Publish a quiz
// @Description  Make the quiz available to candidates; allowed exactly once
// @Tags         quizzes
// @Produce      json
// @Param        quizId  path      int  true  "Quiz ID"
// @Success      200     {object}  response.Response{data=domain.Quiz}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /quizzes/{quizId}/publish [put]
// @Security     BearerAuth
func (h *QuizHandler) PublishQuiz(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can publish quizzes"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	quiz, err := h.quizUC.Publish(c.Request.Context(), userID, email, quizID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quiz published successfully", quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Description  Remove a quiz and all of its questions (owner only)
// @Tags         quizzes
// @Produce      json
// @Param        quizId  path      int  true  "Quiz ID"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /quizzes/{quizId} [delete]
// @Security     BearerAuth
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can delete quizzes"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	if err := h.quizUC.Delete(c.Request.Context(), userID, quizID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quiz deleted successfully", nil)
}
