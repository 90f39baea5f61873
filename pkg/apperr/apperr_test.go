package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(New(Validation, "bad input")))
	assert.Equal(t, NotFound, KindOf(New(NotFound, "gone")))
	assert.Equal(t, Unexpected, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", New(InvalidState, "finalized"))
	assert.Equal(t, InvalidState, KindOf(wrapped))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(New(Validation, "x")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(New(InvalidState, "x")))
	assert.Equal(t, http.StatusNotFound, StatusCode(New(NotFound, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(New(Unexpected, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Email is already registered.", Message(New(Validation, "Email is already registered.")))
	assert.Equal(t, "Something went wrong.", Message(errors.New("mongo: connection reset")))
	assert.Equal(t, "Something went wrong.", Message(Wrap(Unexpected, "insert failed", errors.New("io error"))),
		"infrastructure detail must not leak to clients")
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Validation, "Email is already registered.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.True(t, IsKind(err, Validation))
	assert.False(t, IsKind(err, NotFound))
}
