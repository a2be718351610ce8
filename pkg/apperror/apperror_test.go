package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("post", "x"), http.StatusNotFound},
		{"validation", NewValidation(FieldError{Field: "text", Msg: "Text is required"}), http.StatusBadRequest},
		{"permission answers 401", NewPermissionDenied("not owner"), http.StatusUnauthorized},
		{"conflict answers 400", NewConflict("Post already liked", ""), http.StatusBadRequest},
		{"upstream answers 404", NewUpstream("No Github profile found", nil), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", NewNotFound("profile", "u")), http.StatusNotFound},
		{"override", NewNotFound("profile", "u").WithStatus(http.StatusBadRequest), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	err := NewInternal("mongo write failed", errors.New("connection refused"))
	body := err.ToJSON()
	assert.Equal(t, "Server Error", body["error"])
	assert.NotContains(t, body, "msg")
}

func TestFromBinding(t *testing.T) {
	type req struct {
		Status string `validate:"required"`
		Skills string `validate:"required"`
	}
	verr := validator.New().Struct(req{Skills: "go"})
	require.Error(t, verr)

	appErr := FromBinding(verr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "Status", appErr.Fields[0].Field)
	assert.Equal(t, "Status is required", appErr.Fields[0].Msg)
	assert.ErrorIs(t, appErr, ErrInvalidInput)

	malformed := FromBinding(errors.New("unexpected EOF"))
	assert.Empty(t, malformed.Fields)
	assert.ErrorIs(t, malformed, ErrInvalidInput)
}
