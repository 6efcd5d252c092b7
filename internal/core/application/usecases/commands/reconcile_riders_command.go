package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrReconcileRidersCommandIsNotConstructed = errors.New(
	"ReconcileRidersCommand must be created via NewReconcileRidersCommand constructor",
)

// ReconcileRidersCommand releases Busy riders that no order holds any more.
type ReconcileRidersCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileRidersCommand() ReconcileRidersCommand {
	return ReconcileRidersCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileRidersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRidersCommandIsNotConstructed)
}
