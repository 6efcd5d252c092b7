// Package riderrepo persists rider accounts and their availability with GORM.
package riderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the riders row. The table enforces that Busy and current_order_id agree.
type RiderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Email           string `gorm:"uniqueIndex"`
	Phone           string
	PasswordHash    string
	IsActive        bool
	IsLicensed      bool
	Status          string     `gorm:"index"`
	CurrentOrderID  *uuid.UUID `gorm:"type:uuid"`
	CurrentLocation string
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	var currentOrderID *uuid.UUID
	if id := r.CurrentOrderID(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return RiderDTO{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		Email:           r.Email().String(),
		Phone:           r.Phone(),
		PasswordHash:    r.PasswordHash(),
		IsActive:        r.IsActive(),
		IsLicensed:      r.IsLicensed(),
		Status:          r.Status().String(),
		CurrentOrderID:  currentOrderID,
		CurrentLocation: r.CurrentLocation(),
		CreatedAt:       r.CreatedAt().UTC(),
		UpdatedAt:       r.UpdatedAt().UTC(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromGoogle(*dto.CurrentOrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	status, err := rider.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, email, dto.Phone, dto.PasswordHash, dto.IsActive, dto.IsLicensed,
		status, currentOrderID, dto.CurrentLocation, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
