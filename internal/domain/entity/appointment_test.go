package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-booking-service/internal/domain/apperror"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusCreated, AppointmentStatusAccepted, true},
		{AppointmentStatusCreated, AppointmentStatusRejected, true},
		{AppointmentStatusCreated, AppointmentStatusCompleted, false},
		{AppointmentStatusAccepted, AppointmentStatusCompleted, true},
		{AppointmentStatusAccepted, AppointmentStatusRejected, false},
		{AppointmentStatusAccepted, AppointmentStatusAccepted, false},
		{AppointmentStatusRejected, AppointmentStatusAccepted, false},
		{AppointmentStatusCompleted, AppointmentStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatus_Terminal(t *testing.T) {
	assert.True(t, AppointmentStatusRejected.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.False(t, AppointmentStatusCreated.IsTerminal())
	assert.False(t, AppointmentStatusAccepted.IsTerminal())
}

func TestAppointment_TransitionReleasesSlotOnReject(t *testing.T) {
	a := &Appointment{Active: true, State: AppointmentState{Status: AppointmentStatusCreated}}

	require.NoError(t, a.Transition(AppointmentStatusRejected))
	assert.Equal(t, AppointmentStatusRejected, a.Status())
	assert.False(t, a.Active)
}

func TestAppointment_TransitionFromTerminal(t *testing.T) {
	a := &Appointment{State: AppointmentState{Status: AppointmentStatusCompleted}}

	err := a.Transition(AppointmentStatusAccepted)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.Equal(t, AppointmentStatusCompleted, a.Status())
}

func TestKyc_Decide(t *testing.T) {
	k := &Kyc{Status: KycStatusPending}
	require.NoError(t, k.Decide(KycStatusApproved))
	assert.Equal(t, KycStatusApproved, k.Status)
	assert.False(t, k.CanResubmit())

	err := k.Decide(KycStatusRejected)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.Equal(t, KycStatusApproved, k.Status)
}

func TestKyc_CanResubmit(t *testing.T) {
	assert.False(t, (&Kyc{Status: KycStatusPending}).CanResubmit())
	assert.False(t, (&Kyc{Status: KycStatusApproved}).CanResubmit())
	assert.True(t, (&Kyc{Status: KycStatusRejected}).CanResubmit())
}
