package http

import (
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/model/thirdparty"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every failed request. Reason is set for conflicts.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type SignupRequest struct {
	Name     string              `json:"name"`
	Email    openapi_types.Email `json:"email"`
	Phone    string              `json:"phone"`
	Password string              `json:"password"`
}

type RiderSignupRequest struct {
	SignupRequest
	IsLicensed bool `json:"isLicensed"`
}

type ThirdPartySignupRequest struct {
	Name          string              `json:"name"`
	ContactEmail  openapi_types.Email `json:"contactEmail"`
	ContactPhone  string              `json:"contactPhone"`
	Password      string              `json:"password"`
	Address       string              `json:"address,omitempty"`
	ContactPerson string              `json:"contactPerson,omitempty"`
	Pricing       string              `json:"pricing,omitempty"`
}

type LoginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type NewOrder struct {
	Description        string              `json:"order_description"`
	PickupAddress      string              `json:"pickup_address"`
	DeliveryAddress    string              `json:"delivery_address"`
	LogisticsCompanyID *openapi_types.UUID `json:"logistics_company_id,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type Token struct {
	ID        openapi_types.UUID `json:"id"`
	Role      string             `json:"role"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

type Account struct {
	ID    openapi_types.UUID  `json:"id"`
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
	Phone string              `json:"phone"`
}

type Rider struct {
	ID              openapi_types.UUID  `json:"id"`
	Name            string              `json:"name"`
	Email           openapi_types.Email `json:"email"`
	Phone           string              `json:"phone"`
	Status          string              `json:"status"`
	IsLicensed      bool                `json:"isLicensed"`
	IsActive        bool                `json:"isActive"`
	CurrentOrderID  *openapi_types.UUID `json:"currentOrderId,omitempty"`
	CurrentLocation string              `json:"currentLocation,omitempty"`
}

type ThirdParty struct {
	ID            openapi_types.UUID  `json:"id"`
	Name          string              `json:"name"`
	Address       string              `json:"address,omitempty"`
	ContactPerson string              `json:"contactPerson,omitempty"`
	ContactEmail  openapi_types.Email `json:"contactEmail"`
	ContactPhone  string              `json:"contactPhone"`
	Pricing       string              `json:"pricing"`
}

type Order struct {
	ID                 openapi_types.UUID  `json:"id"`
	CustomerID         openapi_types.UUID  `json:"customer_id"`
	RiderID            *openapi_types.UUID `json:"rider_id,omitempty"`
	LogisticsCompanyID *openapi_types.UUID `json:"logistics_company_id,omitempty"`
	Description        string              `json:"order_description"`
	PickupAddress      string              `json:"pickup_address"`
	DeliveryAddress    string              `json:"delivery_address"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type Count struct {
	Count int64 `json:"count"`
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func toOrder(v queries.OrderView) Order {
	return Order{
		ID:                 v.ID.Bytes(),
		CustomerID:         v.CustomerID.Bytes(),
		RiderID:            optionalUUID(v.RiderID),
		LogisticsCompanyID: optionalUUID(v.LogisticsCompanyID),
		Description:        v.Description,
		PickupAddress:      v.PickupAddress,
		DeliveryAddress:    v.DeliveryAddress,
		Status:             v.Status.String(),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toOrders(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, toOrder(v))
	}
	return out
}

func toCustomer(c *customer.Customer) Account {
	return Account{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Email: openapi_types.Email(c.Email().String()),
		Phone: c.Phone(),
	}
}

func toRider(r *rider.Rider) Rider {
	return Rider{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		Email:           openapi_types.Email(r.Email().String()),
		Phone:           r.Phone(),
		Status:          r.Status().String(),
		IsLicensed:      r.IsLicensed(),
		IsActive:        r.IsActive(),
		CurrentOrderID:  optionalUUID(r.CurrentOrderID()),
		CurrentLocation: r.CurrentLocation(),
	}
}

func toThirdParty(tp *thirdparty.ThirdParty) ThirdParty {
	return ThirdParty{
		ID:            tp.ID().Bytes(),
		Name:          tp.Name(),
		Address:       tp.Address(),
		ContactPerson: tp.ContactPerson(),
		ContactEmail:  openapi_types.Email(tp.ContactEmail().String()),
		ContactPhone:  tp.ContactPhone(),
		Pricing:       tp.Pricing().String(),
	}
}

func toToken(r commands.LoginResult) Token {
	return Token{
		ID:        r.Principal.ID().Bytes(),
		Role:      r.Principal.Role().String(),
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}
