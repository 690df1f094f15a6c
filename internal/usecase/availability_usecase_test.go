package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_Lifecycle(t *testing.T) {
	store := newFakeStore()
	log := quietLogger()
	uc := NewAvailabilityUsecase(log, store.tx, store.availability, store.practitioners, service.NewAuditService(log, store.audit))
	ctx := context.Background()

	userID := uuid.New()
	doctor := &entity.Practitioner{UserID: userID, FirstName: "Rui", LastName: "Costa"}
	_, err := store.practitioners.Save(ctx, doctor)
	require.NoError(t, err)

	created, err := uc.Create(ctx, userID, &dto.CreateAvailabilityRequest{DayOfWeek: 2, WeekNumber: 2})
	require.NoError(t, err)

	_, err = uc.Create(ctx, userID, &dto.CreateAvailabilityRequest{DayOfWeek: 2, WeekNumber: 2})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = uc.Create(ctx, userID, &dto.CreateAvailabilityRequest{DayOfWeek: 8, WeekNumber: 2})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	public, err := uc.ListForPractitioner(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, public.Total)

	_, err = uc.ListForPractitioner(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = uc.Delete(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, apperror.NotFound("practitioner not found"))

	_, err = store.appointments.Save(ctx, &entity.Appointment{
		PractitionerID: doctor.ID,
		AvailabilityID: created.ID,
		SlotDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Active:         true,
	})
	require.NoError(t, err)

	err = uc.Delete(ctx, userID, created.ID)
	assert.ErrorIs(t, err, apperror.Conflict("availability has appointments"))
}

func TestAvailability_DeleteOwnedOnly(t *testing.T) {
	store := newFakeStore()
	log := quietLogger()
	uc := NewAvailabilityUsecase(log, store.tx, store.availability, store.practitioners, service.NewAuditService(log, store.audit))
	ctx := context.Background()

	owner, intruder := uuid.New(), uuid.New()
	for _, userID := range []uuid.UUID{owner, intruder} {
		_, err := store.practitioners.Save(ctx, &entity.Practitioner{UserID: userID, FirstName: "Rui", LastName: "Costa"})
		require.NoError(t, err)
	}

	created, err := uc.Create(ctx, owner, &dto.CreateAvailabilityRequest{DayOfWeek: 5, WeekNumber: 4})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, intruder, created.ID), apperror.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, owner, created.ID))

	mine, err := uc.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, mine.Total)
	assert.Contains(t, store.audit.actions(), entity.AuditActionAvailabilityDelete)
}
