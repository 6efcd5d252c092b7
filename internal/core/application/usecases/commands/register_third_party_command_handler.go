package commands

import (
	"context"

	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RegisterThirdPartyCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	opts       handlerOptions
}

func NewRegisterThirdPartyCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	opts ...HandlerOption,
) RegisterThirdPartyCommandHandler {
	return RegisterThirdPartyCommandHandler{uowFactory: uowFactory, hasher: hasher, opts: newHandlerOptions(opts)}
}

func (h RegisterThirdPartyCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterThirdPartyCommand,
) (*thirdparty.ThirdParty, error) {
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

	companies := uow.ThirdPartyRepository()
	if err = ensureEmailFree(ctx, companies.GetByEmail, cmd.Credentials().Email()); err != nil {
		return nil, err
	}

	account, err := thirdparty.NewThirdParty(cmd.ThirdPartyID(), cmd.Profile(), hash, h.opts.now())
	if err != nil {
		return nil, err
	}

	if err = companies.Add(ctx, account); err != nil {
		return nil, errs.AsPersistence("add logistics company", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return account, nil
}
