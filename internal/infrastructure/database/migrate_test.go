package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/clinic?sslmode=disable", MigrationURL("postgres://u:p@db:5432/clinic?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/clinic", MigrationURL("postgresql://u@db/clinic"))
	assert.Equal(t, "pgx5://db/clinic", MigrationURL("pgx5://db/clinic"))
}
