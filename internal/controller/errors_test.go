package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hp_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"question not in collection", util.ErrQuestionNotInCollection, http.StatusNotFound},
		{"attempt not found", util.ErrAttemptNotFound, http.StatusNotFound},
		{"collection not found", util.ErrCollectionNotFound, http.StatusNotFound},
		{"already answered", util.ErrQuestionAlreadyAnswered, http.StatusConflict},
		{"attempt completed", util.ErrAttemptCompleted, http.StatusConflict},
		{"attempt incomplete", util.ErrAttemptIncomplete, http.StatusUnprocessableEntity},
		{"answer of another question", util.ErrAnswerNotOfQuestion, http.StatusBadRequest},
		{"bad difficulty", util.ErrInvalidDifficulty, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			respondServiceError(ctx, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
