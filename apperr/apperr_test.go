package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFoundf("task not found"), http.StatusNotFound},
		{Forbiddenf("insufficient permissions"), http.StatusForbidden},
		{BadRequestf("position must not be negative"), http.StatusBadRequest},
		{Conflictf("tag exists"), http.StatusConflict},
		{Unauthorizedf("bad credentials"), http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "%v", tt.err)
	}
}

func TestMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("dsn=root:hunter2@tcp")))
	assert.Equal(t, "task not found", Message(NotFoundf("task not found")))
}

func TestWrappedKeepsChain(t *testing.T) {
	err := fmt.Errorf("update task: %w", NotFoundf("task %d not found", 7))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, Status(err))
}
