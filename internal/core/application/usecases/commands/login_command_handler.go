package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ErrInvalidCredentials is the single answer to an unknown e-mail and a wrong password.
var ErrInvalidCredentials = errs.NewUnauthenticatedError("invalid email or password")

// LoginResult is a signed token for the authenticated principal.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal identity.Principal
}

// account is what login needs from any of the three account kinds.
type account interface {
	ID() kernel.UUID
	PasswordHash() string
}

type LoginCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	opts       handlerOptions
}

func NewLoginCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	opts ...HandlerOption,
) LoginCommandHandler {
	return LoginCommandHandler{uowFactory: uowFactory, hasher: hasher, issuer: issuer, opts: newHandlerOptions(opts)}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := begin(ctx, uow); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	found, err := h.lookup(ctx, uow, cmd.Role(), cmd.Credentials().Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, errs.AsPersistence("lookup account", err)
	}

	if !h.hasher.Verify(cmd.Credentials().Password(), found.PasswordHash()) {
		return LoginResult{}, ErrInvalidCredentials
	}

	principal, err := identity.NewPrincipal(found.ID(), cmd.Role())
	if err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := h.issuer.Issue(principal)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

func (LoginCommandHandler) lookup(ctx context.Context, uow AccountUoW, role identity.Role, email kernel.Email) (account, error) {
	switch role {
	case identity.RoleCustomer:
		return uow.CustomerRepository().GetByEmail(ctx, email)
	case identity.RoleRider:
		return uow.RiderRepository().GetByEmail(ctx, email)
	case identity.RoleThirdParty:
		return uow.ThirdPartyRepository().GetByEmail(ctx, email)
	default:
		return nil, role.Validate()
	}
}
