package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := Conflict("user already exists")

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, Conflict("user already exists"))
	assert.NotErrorIs(t, err, Conflict("slot taken"))
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", InvalidState("appointment is not accepted"))

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Equal(t, "appointment is not accepted", MessageOf(err))
}

func TestPersistence_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("could not create user", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "could not create user: connection reset", err.Error())
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
