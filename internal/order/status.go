package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/models"
)

var (
	// ErrUnknownStatus rejects a status outside the fixed vocabulary.
	ErrUnknownStatus = errors.New("estado desconocido")

	// ErrInvalidTransition rejects a status change the lifecycle does not
	// allow.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// Allowed status transitions. Orders move forward through
// pendiente → procesando → enviado → entregado; cancelado is reachable from
// any non-terminal state. entregado and cancelado are terminal.
var statusTransitions = map[string][]string{
	models.StatusPendiente:  {models.StatusProcesando, models.StatusCancelado},
	models.StatusProcesando: {models.StatusEnviado, models.StatusCancelado},
	models.StatusEnviado:    {models.StatusEntregado, models.StatusCancelado},
	models.StatusEntregado:  {},
	models.StatusCancelado:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order to a new status, enforcing the transition
// table. Only the status ever changes after creation; everything else on the
// order is immutable.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, status)
	}

	current, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanTransition(current.Status, status) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, current.Status, status)
	}

	return s.orders.UpdateStatus(ctx, orderID, status)
}
