// Package http exposes the logistics use cases over a JSON API served by echo.
package http

import (
	"net/http"

	"logistics/internal/core/application/access"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/model/thirdparty"

	"github.com/labstack/echo/v4"
)

// Accounts are the sign-up and login use cases. They run before any principal exists
// and so bypass the gate.
type Accounts struct {
	RegisterCustomer   access.Handler[commands.RegisterCustomerCommand, *customer.Customer]
	RegisterRider      access.Handler[commands.RegisterRiderCommand, *rider.Rider]
	RegisterThirdParty access.Handler[commands.RegisterThirdPartyCommand, *thirdparty.ThirdParty]
	Login              access.Handler[commands.LoginCommand, commands.LoginResult]
}

// Server translates requests into gate and account calls. Every handler returns the
// use case error unchanged; NewErrorHandler turns it into a response.
type Server struct {
	gate     *access.Gate
	accounts Accounts
}

func NewServer(gate *access.Gate, accounts Accounts) *Server {
	return &Server{gate: gate, accounts: accounts}
}

func bind[T any](c echo.Context) (T, error) {
	var body T
	if err := c.Bind(&body); err != nil {
		return body, err
	}
	return body, nil
}

// RegisterCustomer handles POST /customers/signup.
func (s *Server) RegisterCustomer(c echo.Context) error {
	req, err := bind[SignupRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterCustomerCommand(kernel.NewUUID(), req.Name, string(req.Email), req.Phone, req.Password)
	if err != nil {
		return err
	}
	created, err := s.accounts.RegisterCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomer(created))
}

// RegisterRider handles POST /riders/signup.
func (s *Server) RegisterRider(c echo.Context) error {
	req, err := bind[RiderSignupRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterRiderCommand(
		kernel.NewUUID(), req.Name, string(req.Email), req.Phone, req.Password, req.IsLicensed,
	)
	if err != nil {
		return err
	}
	created, err := s.accounts.RegisterRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRider(created))
}

// RegisterThirdParty handles POST /logistics/signup.
func (s *Server) RegisterThirdParty(c echo.Context) error {
	req, err := bind[ThirdPartySignupRequest](c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterThirdPartyCommand(
		kernel.NewUUID(), req.Name, string(req.ContactEmail), req.ContactPhone, req.Password,
		req.Address, req.ContactPerson, req.Pricing,
	)
	if err != nil {
		return err
	}
	created, err := s.accounts.RegisterThirdParty.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toThirdParty(created))
}

// Login returns the handler of POST /{customers|riders|logistics}/login.
func (s *Server) Login(role identity.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bind[LoginRequest](c)
		if err != nil {
			return err
		}

		cmd, err := commands.NewLoginCommand(role, string(req.Email), req.Password)
		if err != nil {
			return err
		}
		result, err := s.accounts.Login.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toToken(result))
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	req, err := bind[NewOrder](c)
	if err != nil {
		return err
	}
	companyID, err := optionalKernelUUID("logistics_company_id", req.LogisticsCompanyID)
	if err != nil {
		return err
	}

	created, err := s.gate.CreateOrder(c.Request().Context(), principalOf(c), access.OrderInput{
		OrderID:            kernel.NewUUID(),
		Description:        req.Description,
		PickupAddress:      req.PickupAddress,
		DeliveryAddress:    req.DeliveryAddress,
		LogisticsCompanyID: companyID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrder(queries.NewOrderView(created)))
}

// CancelOrder handles POST /orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cancelled, err := s.gate.CancelOrder(c.Request().Context(), principalOf(c), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.NewOrderView(cancelled)))
}

// AcceptOrder handles PUT /orders/{orderId}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	accepted, err := s.gate.AcceptOrder(c.Request().Context(), principalOf(c), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.NewOrderView(accepted)))
}

// UpdateOrderStatus handles PUT /orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	req, err := bind[StatusRequest](c)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	updated, err := s.gate.UpdateOrderStatus(c.Request().Context(), principalOf(c), orderID, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.NewOrderView(updated)))
}

// FetchOrders handles GET /orders with an optional status filter.
func (s *Server) FetchOrders(c echo.Context) error {
	status, err := statusQuery(c)
	if err != nil {
		return err
	}

	var views []queries.OrderView
	if status == nil {
		views, err = s.gate.FetchAll(c.Request().Context(), principalOf(c))
	} else {
		views, err = s.gate.FetchByStatus(c.Request().Context(), principalOf(c), *status)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// CountOrders handles GET /orders/count.
func (s *Server) CountOrders(c echo.Context) error {
	status, err := statusQuery(c)
	if err != nil {
		return err
	}

	n, err := s.gate.Count(c.Request().Context(), principalOf(c), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Count{Count: n})
}

// FetchCustomerOrders handles GET /customers/{customerId}/orders.
func (s *Server) FetchCustomerOrders(c echo.Context) error {
	customerID, err := pathUUID(c, "customerId")
	if err != nil {
		return err
	}

	views, err := s.gate.FetchByCustomer(c.Request().Context(), principalOf(c), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// FetchRiderOrders handles GET /riders/{riderId}/orders.
func (s *Server) FetchRiderOrders(c echo.Context) error {
	riderID, err := pathUUID(c, "riderId")
	if err != nil {
		return err
	}

	views, err := s.gate.FetchByRider(c.Request().Context(), principalOf(c), riderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// SetRiderAvailability handles PATCH /riders/{riderId}/availability.
func (s *Server) SetRiderAvailability(c echo.Context) error {
	riderID, err := pathUUID(c, "riderId")
	if err != nil {
		return err
	}
	req, err := bind[StatusRequest](c)
	if err != nil {
		return err
	}
	status, err := rider.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	updated, err := s.gate.SetRiderAvailability(c.Request().Context(), principalOf(c), riderID, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRider(updated))
}

// FetchCompanyOrders handles GET /logistics/orders.
func (s *Server) FetchCompanyOrders(c echo.Context) error {
	status, err := statusQuery(c)
	if err != nil {
		return err
	}

	views, err := s.gate.FetchCompanyOrders(c.Request().Context(), principalOf(c), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// FetchCompanyOrder handles GET /logistics/orders/{orderId}.
func (s *Server) FetchCompanyOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	view, err := s.gate.FetchCompanyOrder(c.Request().Context(), principalOf(c), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(view))
}
