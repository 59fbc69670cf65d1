package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "email", "password", "role", "created_at"}

func TestCreateUserMapsDuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("marta", "marta@example.com", "hash", "user").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := s.Create(context.Background(), &models.User{
		Username: "marta",
		Email:    "marta@example.com",
		Password: "hash",
		Role:     models.RoleUser,
	})

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db)

	mock.ExpectQuery("FROM users WHERE email =").
		WithArgs("marta@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(7, "marta", "marta@example.com", "hash", "user", time.Now()))

	u, err := s.GetByEmail(context.Background(), "marta@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestGetByEmailMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db)

	mock.ExpectQuery("FROM users WHERE email =").
		WithArgs("nadie@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := s.GetByEmail(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
