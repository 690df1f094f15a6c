package usecase

import (
	"context"
	"testing"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCatalog_CreateAndList(t *testing.T) {
	store := newFakeStore()
	log := quietLogger()
	uc := NewServiceCatalogUsecase(log, store.tx, store.services, service.NewAuditService(log, store.audit))
	ctx := context.Background()

	created, err := uc.Create(ctx, &dto.CreateServiceRequest{Name: "  Cardiology "})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", created.Name)

	_, err = uc.Create(ctx, &dto.CreateServiceRequest{Name: "Cardiology"})
	assert.ErrorIs(t, err, apperror.Conflict("service already exists"))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}
