package v1

import (
	"net/http"
	"strconv"

	"matchgo-backend/internal/delivery/http/response"
	"matchgo-backend/internal/domain"
	"matchgo-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

// NewQuestionHandler registers question bank routes
func NewQuestionHandler(r *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	quizzes := r.Group("/quizzes")
	{
		quizzes.POST("/:quizId/questions", handler.AddQuestion)
		quizzes.GET("/:quizId/questions", handler.ListQuestions)
	}

	questions := r.Group("/questions")
	{
		questions.PUT("/:questionId", handler.UpdateQuestion)
		questions.DELETE("/:questionId", handler.DeleteQuestion)
	}
}

// AddQuestionRequest is the request payload for adding a question
type AddQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	QuestionType  string   `json:"question_type" binding:"omitempty,oneof=multiple-choice true-false open"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Score         int      `json:"score" binding:"required,min=1"`
}

// AddQuestion godoc
// @Summary      Add a question to a quiz
// @Description  Append a scored question; order is assigned automatically (owner only)
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        quizId  path      int                 true  "Quiz ID"
// @Param        body    body      AddQuestionRequest  true  "Question data"
// @Success      201     {object}  response.Response{data=domain.Question}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /quizzes/{quizId}/questions [post]
// @Security     BearerAuth
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can add questions"))
		return
	}

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	question, err := h.questionUC.Add(c.Request.Context(), userID, quizID, &domain.Question{
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		Choices:       req.Choices,
		CorrectAnswer: req.CorrectAnswer,
		Score:         req.Score,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Question added successfully", question)
}

// ListQuestions godoc
// @Summary      List questions of a quiz
// @Description  Returns questions in order; correct answers are hidden from candidates
// @Tags         questions
// @Produce      json
// @Param        quizId  path      int  true  "Quiz ID"
// @Success      200     {object}  response.Response{data=[]domain.Question}
// @Failure      404     {object}  response.Response
// @Router       /quizzes/{quizId}/questions [get]
// @Security     BearerAuth
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))

	quizID, err := strconv.ParseInt(c.Param("quizId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid quiz ID"))
		return
	}

	questions, err := h.questionUC.ListByQuiz(c.Request.Context(), role, quizID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questions retrieved", questions)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Description  Partially update a question; triggers a quiz stats recompute (owner only)
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        questionId  path      int                   true  "Question ID"
// @Param        body        body      domain.QuestionPatch  true  "Fields to update"
// @Success      200         {object}  response.Response{data=domain.Question}
// @Failure      400         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /questions/{questionId} [put]
// @Security     BearerAuth
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can update questions"))
		return
	}

	questionID, err := strconv.ParseInt(c.Param("questionId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid question ID"))
		return
	}

	var patch domain.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	question, err := h.questionUC.Update(c.Request.Context(), userID, questionID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question updated successfully", question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Description  Remove a question; remaining orders keep their gaps (owner only)
// @Tags         questions
// @Produce      json
// @Param        questionId  path      int  true  "Question ID"
// @Success      200         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /questions/{questionId} [delete]
// @Security     BearerAuth
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can delete questions"))
		return
	}

	questionID, err := strconv.ParseInt(c.Param("questionId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid question ID"))
		return
	}

	if err := h.questionUC.Delete(c.Request.Context(), userID, questionID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question deleted successfully", nil)
}
