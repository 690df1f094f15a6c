package service

import (
	"context"
	"strings"
	"testing"

	"clinic-booking-service/internal/domain/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPictureObjectName(t *testing.T) {
	owner := uuid.New()

	name, err := PictureObjectName(owner, "image/png", 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "profiles/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	_, err = PictureObjectName(owner, "application/pdf", 1024)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = PictureObjectName(owner, "image/jpeg", MaxPictureSize+1)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDisabledPictureStorage(t *testing.T) {
	storage := NewPictureStorage(nil, "bucket", "", nil)

	_, err := storage.Upload(context.Background(), uuid.New(), strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewEventPublisher(nil, "clinic.events", nil)
	assert.NoError(t, publisher.Publish(context.Background(), EventAppointmentCreated, map[string]string{"id": "1"}))
}
