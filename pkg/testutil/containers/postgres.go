//go:build integration

package containers

import (
	"context"
	"io"
	"testing"

	"clinic-booking-service/config"
	"clinic-booking-service/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *gorm.DB
}

// NewPostgresContainer starts a throwaway Postgres, applies the embedded
// migrations and opens a pool the same way the service does.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clinic"),
		tcpostgres.WithUsername("clinic"),
		tcpostgres.WithPassword("clinic"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	if err := database.RunMigrations(url, log); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db, err := database.NewPostgresConnection(&config.Config{
		DB: config.DBConfig{URL: url, MaxOpenConns: 20, MaxIdleConns: 5},
	}, log)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &PostgresContainer{Container: container, URL: url, DB: db}
}
