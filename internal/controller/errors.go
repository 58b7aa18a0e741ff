package controller

import (
	"errors"

	"hp_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates the service sentinel errors into HTTP
// responses; anything unrecognized is logged as a 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPartNotFound),
		errors.Is(err, util.ErrTagNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrCollectionNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrQuestionNotInCollection):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionAlreadyAnswered),
		errors.Is(err, util.ErrAttemptCompleted),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrUsernameRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptIncomplete):
		util.FailedPrecondition(ctx, err.Error())
	case errors.Is(err, util.ErrAnswerNotOfQuestion),
		errors.Is(err, util.ErrInvalidDifficulty),
		errors.Is(err, util.ErrInvalidSlug):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
