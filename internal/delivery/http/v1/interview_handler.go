package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview session routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("", handler.Start)
		interviews.GET("/history", handler.GetHistory)
		interviews.GET("/:id", handler.GetByID)
		interviews.GET("/:id/next-question", handler.GetNextQuestion)
		interviews.POST("/:id/answers", handler.SubmitAnswer)
		interviews.POST("/:id/complete", handler.Complete)
		interviews.GET("/:id/results", handler.GetResults)
	}
}

// StartInterviewRequest is the request payload for starting an interview
type StartInterviewRequest struct {
	Role            string `json:"role" binding:"required"`
	ExperienceLevel *int   `json:"experience_level" binding:"required"`
}

// Start godoc
// @Summary      Start an interview
// @Description  Create a new interview session and generate the first question
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      StartInterviewRequest  true  "Interview parameters"
// @Success      201   {object}  response.Response{data=domain.StartResult}
// @Failure      400   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Start(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidArgument("Role and experience level are required"))
		return
	}

	result, err := h.interviewUC.Start(c.Request.Context(), userID, req.Role, *req.ExperienceLevel)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview started successfully", result)
}

// GetNextQuestion godoc
// @Summary      Get the next question
// @Description  Generate and return the next interview question, or signal exhaustion
// @Tags         interviews
// @Produce      json
// @Param        id  path      string  true  "Interview ID"
// @Success      200 {object}  response.Response{data=domain.NextQuestionResult}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Failure      409 {object}  response.Response
// @Router       /interviews/{id}/next-question [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetNextQuestion(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.interviewUC.GetNextQuestion(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Next question generated"
	if result.IsComplete {
		message = "All questions have been asked"
	}
	response.Success(c, http.StatusOK, message, result)
}

// SubmitAnswerRequest is the request payload for submitting an answer
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	TimeSpent  *int   `json:"time_spent" binding:"required"`
}

// SubmitAnswer godoc
// @Summary      Submit an answer
// @Description  Submit and evaluate the answer for one question. Duplicate submissions return the stored evaluation.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Interview ID"
// @Param        body  body      SubmitAnswerRequest  true  "Answer payload"
// @Success      200   {object}  response.Response{data=domain.SubmitAnswerResult}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /interviews/{id}/answers [post]
// @Security     BearerAuth
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidArgument("Question ID, answer, and time spent are required"))
		return
	}

	result, err := h.interviewUC.SubmitAnswer(c.Request.Context(), c.Param("id"), userID, req.QuestionID, req.Answer, *req.TimeSpent)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answer submitted and evaluated successfully", result)
}

// Complete godoc
// @Summary      Complete an interview
// @Description  Finalize the interview and synthesize overall feedback. Idempotent: repeating returns the stored results.
// @Tags         interviews
// @Produce      json
// @Param        id  path      string  true  "Interview ID"
// @Success      200 {object}  response.Response{data=domain.InterviewResults}
// @Failure      403 {object}  response.Response
// @Failure      409 {object}  response.Response
// @Failure      502 {object}  response.Response
// @Router       /interviews/{id}/complete [post]
// @Security     BearerAuth
func (h *InterviewHandler) Complete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	results, err := h.interviewUC.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview completed successfully", gin.H{"results": results})
}

// GetResults godoc
// @Summary      Get interview results
// @Description  Results of a completed interview, including the per-question breakdown
// @Tags         interviews
// @Produce      json
// @Param        id  path      string  true  "Interview ID"
// @Success      200 {object}  response.Response{data=domain.InterviewResults}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Failure      409 {object}  response.Response
// @Router       /interviews/{id}/results [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetResults(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	results, err := h.interviewUC.GetResults(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Results retrieved", gin.H{"results": results})
}

// GetByID godoc
// @Summary      Get interview details
// @Description  Full interview record for its owner
// @Tags         interviews
// @Produce      json
// @Param        id  path      string  true  "Interview ID"
// @Success      200 {object}  response.Response{data=domain.Interview}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetByID(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	interview, err := h.interviewUC.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview retrieved", interview)
}

// GetHistory godoc
// @Summary      Get interview history
// @Description  Paginated interview history for the current user
// @Tags         interviews
// @Produce      json
// @Param        status  query     string  false  "Status filter (in-progress, completed, abandoned, all)"  default(completed)
// @Param        page    query     int     false  "Page number"  default(1)
// @Param        limit   query     int     false  "Page size"    default(20)
// @Success      200     {object}  response.Response{data=domain.HistoryPage}
// @Failure      400     {object}  response.Response
// @Router       /interviews/history [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetHistory(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	status := c.DefaultQuery("status", domain.StatusCompleted)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.Error(apperror.InvalidArgument("Invalid page number"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.Error(apperror.InvalidArgument("Invalid limit"))
		return
	}

	history, err := h.interviewUC.GetHistory(c.Request.Context(), userID, status, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "History retrieved", history)
}
