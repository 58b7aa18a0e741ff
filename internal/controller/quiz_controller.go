package controller

import (
	"hp_quiz_backend/internal/service"
	"hp_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// StartAttempt godoc
// @Summary Start (or resume) an attempt on a collection
// @Description Returns the existing open attempt if one is in progress
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "Collection slug"
// @Success 200 {object} util.Response{data=service.AttemptView} "Attempt"
// @Failure 404 {object} util.Response "Collection not found"
// @Router /api/collections/{slug}/attempts [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.QuizService.StartAttempt(claims.UserID, ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// GetAttempt godoc
// @Summary Attempt state with progress counts
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "Attempt"
// @Failure 404 {object} util.Response "Attempt not found"
// @Router /api/attempts/{id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.QuizService.GetAttempt(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// SubmitAnswer godoc
// @Summary Answer one question inside an open attempt
// @Description Each question may be answered once per attempt; a null selection records a skip
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                         true "Attempt ID"
// @Param   body body service.SubmitAnswerRequest true "Selection"
// @Success 200 {object} util.Response{data=service.SubmittedAnswer} "Graded answer"
// @Failure 400 {object} util.Response "Option does not belong to the question"
// @Failure 404 {object} util.Response "Attempt or question not found"
// @Failure 409 {object} util.Response "Question already answered in this attempt"
// @Failure 422 {object} util.Response "Attempt already completed"
// @Router /api/attempts/{id}/answers [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.QuizService.SubmitAnswer(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// CompleteAttempt godoc
// @Summary Close the attempt and record its score
// @Description Fails until every question of the collection has been answered
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=service.ResultView} "Result"
// @Failure 404 {object} util.Response "Attempt not found"
// @Failure 422 {object} util.Response "Attempt incomplete or already completed"
// @Router /api/attempts/{id}/complete [post]
func (c *QuizController) CompleteAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.CompleteAttempt(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListAttemptAnswers godoc
// @Summary The caller's recorded answers for an attempt
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=[]service.SubmittedAnswer} "Answers"
// @Failure 404 {object} util.Response "Attempt not found"
// @Router /api/attempts/{id}/answers [get]
func (c *QuizController) ListAttemptAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	answers, err := c.QuizService.AttemptAnswers(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// ListResults godoc
// @Summary The caller's scores for a collection, newest first
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "Collection slug"
// @Success 200 {object} util.Response{data=[]service.ResultView} "Results"
// @Failure 404 {object} util.Response "Collection not found"
// @Router /api/collections/{slug}/results [get]
func (c *QuizController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.QuizService.ListResults(claims.UserID, ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
