package commands

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RegisterCustomerCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	opts       handlerOptions
}

func NewRegisterCustomerCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	opts ...HandlerOption,
) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{uowFactory: uowFactory, hasher: hasher, opts: newHandlerOptions(opts)}
}

func (h RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (*customer.Customer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
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

	customers := uow.CustomerRepository()
	if err = ensureEmailFree(ctx, customers.GetByEmail, cmd.Credentials().Email()); err != nil {
		return nil, err
	}

	account, err := customer.NewCustomer(
		cmd.CustomerID(), cmd.Name(), cmd.Credentials().Email(), cmd.Phone(), hash, h.opts.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = customers.Add(ctx, account); err != nil {
		return nil, errs.AsPersistence("add customer", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return account, nil
}
