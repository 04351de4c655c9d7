package v1

import (
	"net/http"
	"strconv"

	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewSubmissionHandler registers quiz submission routes. The submit route
// carries its own strict rate limit on top of the global one.
func NewSubmissionHandler(r *gin.RouterGroup, submissionUC domain.SubmissionUsecase, submitLimit gin.HandlerFunc) {
	handler := &SubmissionHandler{submissionUC: submissionUC}

	quizzes := r.Group("/quizzes")
	{
		quizzes.POST("/:quizId/submit", submitLimit, handler.SubmitQuiz)
		quizzes.GET("/:quizId/submissions", handler.ListSubmissions)
	}
}

// SubmitQuizRequest is the request payload for submitting quiz answers
type SubmitQuizRequest struct {
	Answers []domain.AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// SubmitQuiz godoc
// @Summary      Submit quiz answers
// @Description  Grade the candidate's answers and record the result. One submission per offer per 48 hours.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        quizId  path      int                true  "Quiz ID"
// @Param        body    body      SubmitQuizRequest  true  "Answers"
// @Success      201     {object}  response.Response{data=domain.QuizSubmission}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /quizzes/{quizId}/submit [post]
// @Security     BearerAuth
func (h *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can submit quizzes"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	submission, err := h.submissionUC.Submit(c.Request.Context(), userID, quizID, req.Answers)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Quiz submitted successfully", submission)
}

// ListSubmissions godoc
// @Summary      List submissions for a quiz
// @Description  All graded submissions for a quiz the caller owns
// @Tags         submissions
// @Produce      json
// @Param        quizId  path      int  true  "Quiz ID"
// @Success      200     {object}  response.Response{data=[]domain.QuizSubmission}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /quizzes/{quizId}/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can view submissions"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	submissions, err := h.submissionUC.ListByQuiz(c.Request.Context(), userID, quizID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Submissions retrieved", submissions)
}
