package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	conn := dbtest.New(t)
	ctx := context.Background()

	created, err := db.SeedAdmin(ctx, conn, "admin", "admin")
	require.NoError(t, err)
	require.True(t, created)

	created, err = db.SeedAdmin(ctx, conn, "admin", "other")
	require.NoError(t, err)
	require.False(t, created)

	var users []models.User
	require.NoError(t, conn.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, models.RoleAdmin, users[0].Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("admin")))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := db.Open(config.DBConfig{Driver: "mysql", URL: "x"})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	conn := dbtest.New(t)
	require.NoError(t, db.Ping(context.Background(), conn))
}
