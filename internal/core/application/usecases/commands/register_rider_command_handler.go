package commands

import (
	"context"

	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RegisterRiderCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	opts       handlerOptions
}

func NewRegisterRiderCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	opts ...HandlerOption,
) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{uowFactory: uowFactory, hasher: hasher, opts: newHandlerOptions(opts)}
}

func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !cmd.IsLicensed() {
		return nil, rider.ErrRiderIsNotLicensed
	}

	hash, err := hashPassword(h.hasher, cmd.Credentials().Password())
	if err != nil {
		return nil, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = begin(ctx, uow); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riders := uow.RiderRepository()
	if err = ensureEmailFree(ctx, riders.GetByEmail, cmd.Credentials().Email()); err != nil {
		return nil, err
	}

	account, err := rider.NewRider(
		cmd.RiderID(),
		cmd.Name(),
		cmd.Credentials().Email(),
		cmd.Phone(),
		hash,
		cmd.IsLicensed(),
		h.opts.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = riders.Add(ctx, account); err != nil {
		return nil, errs.AsPersistence("add rider", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return account, nil
}
