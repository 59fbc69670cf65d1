package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPendiente, models.StatusProcesando, true},
		{models.StatusProcesando, models.StatusEnviado, true},
		{models.StatusEnviado, models.StatusEntregado, true},
		{models.StatusPendiente, models.StatusCancelado, true},
		{models.StatusProcesando, models.StatusCancelado, true},
		{models.StatusEnviado, models.StatusCancelado, true},

		// no skipping ahead
		{models.StatusPendiente, models.StatusEnviado, false},
		{models.StatusPendiente, models.StatusEntregado, false},
		// no moving backwards
		{models.StatusProcesando, models.StatusPendiente, false},
		{models.StatusEnviado, models.StatusProcesando, false},
		// terminal states stay terminal
		{models.StatusEntregado, models.StatusCancelado, false},
		{models.StatusCancelado, models.StatusPendiente, false},
		{models.StatusEntregado, models.StatusEnviado, false},
		// self transitions are not a thing
		{models.StatusPendiente, models.StatusPendiente, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s to %s", tc.from, tc.to)
	}
}

func TestUpdateStatusValidTransition(t *testing.T) {
	svc, mock := newTestService(t)

	orderCols := []string{"id", "user_id", "total_amount", "status", "created_at"}
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(5, 7, "240.00", "pendiente", time.Now()))
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("procesando", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.UpdateStatus(context.Background(), 5, models.StatusProcesando)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	svc, mock := newTestService(t)

	orderCols := []string{"id", "user_id", "total_amount", "status", "created_at"}
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(5, 7, "240.00", "entregado", time.Now()))

	err := svc.UpdateStatus(context.Background(), 5, models.StatusProcesando)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet(), "no update may be issued")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.UpdateStatus(context.Background(), 5, "perdido")

	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
