package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business types offered on the booking form
const (
	BusinessTypeIndividual     = "individual"
	BusinessTypeSoleProprietor = "sole-proprietor"
	BusinessTypeSmallBusiness  = "small-business"
	BusinessTypeCorporation    = "corporation"
	BusinessTypeNonProfit      = "non-profit"
)

// Consultation request status
const (
	ConsultationStatusNew       = "new"
	ConsultationStatusContacted = "contacted"
	ConsultationStatusClosed    = "closed"
)

// ConsultationRequest is a free consultation booked through the landing page form.
type ConsultationRequest struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Requester information
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"not null;index" json:"email"`
	Phone        string `json:"phone,omitempty"`
	BusinessType string `gorm:"not null" json:"business_type"`

	// Booking details
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	Message       string     `gorm:"type:text" json:"message,omitempty"`
	Status        string     `gorm:"not null;default:new;index" json:"status"`
	Variant       string     `gorm:"index" json:"variant"`
	ContactedAt   *time.Time `json:"contacted_at,omitempty"`

	// Audit fields
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate hook to generate UUID
func (cr *ConsultationRequest) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == "" {
		cr.ID = uuid.New().String()
	}
	if cr.Status == "" {
		cr.Status = ConsultationStatusNew
	}
	return nil
}

// TableName specifies the table name for ConsultationRequest model
func (ConsultationRequest) TableName() string {
	return "consultation_requests"
}

// BusinessTypes lists the accepted business types in form order.
func BusinessTypes() []string {
	return []string{
		BusinessTypeIndividual,
		BusinessTypeSoleProprietor,
		BusinessTypeSmallBusiness,
		BusinessTypeCorporation,
		BusinessTypeNonProfit,
	}
}

// IsValidBusinessType checks if the business type is valid
func IsValidBusinessType(businessType string) bool {
	return slices.Contains(BusinessTypes(), businessType)
}

// IsValidConsultationStatus checks if the status is valid
func IsValidConsultationStatus(status string) bool {
	switch status {
	case ConsultationStatusNew, ConsultationStatusContacted, ConsultationStatusClosed:
		return true
	}
	return false
}
