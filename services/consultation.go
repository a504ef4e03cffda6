package services

import (
	"errors"
	"fmt"
	"html"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"file_bridge_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Field limits for the booking form
const (
	MaxConsultationNameLength    = 200
	MaxConsultationPhoneLength   = 40
	MaxConsultationMessageLength = 2000
	DefaultConsultationPageSize  = 100
)

var (
	ErrConsultationNotFound      = errors.New("consultation request not found")
	ErrInvalidConsultationStatus = errors.New("invalid consultation status")
)

var strictPolicy = bluemonday.StrictPolicy()

// ValidationError collects per-field problems of a form submission. Keys are
// form field names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// ConsultationInput is the raw booking form submission.
type ConsultationInput struct {
	Name          string
	Email         string
	Phone         string
	BusinessType  string
	PreferredDate string // YYYY-MM-DD, optional
	Message       string
	Variant       string
	IPAddress     string
	UserAgent     string
}

// NormalizeConsultationInput validates in and returns the request to persist.
// The preferred date may not lie before the day of now.
func NormalizeConsultationInput(in ConsultationInput, now time.Time) (*models.ConsultationRequest, error) {
	verr := &ValidationError{}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		verr.add("name", "name is required")
	case utf8.RuneCountInString(name) > MaxConsultationNameLength:
		verr.add("name", fmt.Sprintf("name must be at most %d characters", MaxConsultationNameLength))
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		verr.add("email", "email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.add("email", "email address is invalid")
	}

	phone := strings.TrimSpace(in.Phone)
	if len(phone) > MaxConsultationPhoneLength {
		verr.add("phone", fmt.Sprintf("phone must be at most %d characters", MaxConsultationPhoneLength))
	} else if strings.IndexFunc(phone, func(r rune) bool {
		return !strings.ContainsRune("0123456789+-(). ", r)
	}) >= 0 {
		verr.add("phone", "phone may only contain digits, spaces and + - ( ) .")
	}

	if !models.IsValidBusinessType(in.BusinessType) {
		verr.add("business_type", "business type is invalid")
	}

	var preferred *time.Time
	if s := strings.TrimSpace(in.PreferredDate); s != "" {
		d, err := ParseDate(s, now.Location())
		if err != nil {
			verr.add("preferred_date", "preferred date must be formatted YYYY-MM-DD")
		} else {
			if d.Before(StartOfDay(now)) {
				verr.add("preferred_date", "preferred date cannot be in the past")
			} else {
				preferred = &d
			}
		}
	}

	// Stored as plain text; every template escapes on output
	message := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(in.Message)))
	if utf8.RuneCountInString(message) > MaxConsultationMessageLength {
		verr.add("message", fmt.Sprintf("message must be at most %d characters", MaxConsultationMessageLength))
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	return &models.ConsultationRequest{
		Name:          name,
		Email:         email,
		Phone:         phone,
		BusinessType:  in.BusinessType,
		PreferredDate: preferred,
		Message:       message,
		Status:        models.ConsultationStatusNew,
		Variant:       in.Variant,
		IPAddress:     in.IPAddress,
		UserAgent:     in.UserAgent,
	}, nil
}

// CreateConsultationRequest validates and persists a booking.
func CreateConsultationRequest(db *gorm.DB, in ConsultationInput, now time.Time) (*models.ConsultationRequest, error) {
	req, err := NormalizeConsultationInput(in, now)
	if err != nil {
		return nil, err
	}
	if err := db.Create(req).Error; err != nil {
		return nil, fmt.Errorf("failed to create consultation request: %w", err)
	}
	return req, nil
}

// ConsultationFilter narrows ListConsultationRequests. Zero values match all;
// a zero Limit means DefaultConsultationPageSize and a negative one no limit.
type ConsultationFilter struct {
	Status  string
	Variant string
	Since   *time.Time
	Limit   int
}

// ListConsultationRequests returns bookings, newest first.
func ListConsultationRequests(db *gorm.DB, filter ConsultationFilter) ([]models.ConsultationRequest, error) {
	query := db.Model(&models.ConsultationRequest{})

	if filter.Status != "" {
		if !models.IsValidConsultationStatus(filter.Status) {
			return nil, ErrInvalidConsultationStatus
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Variant != "" {
		query = query.Where("variant = ?", filter.Variant)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	switch {
	case filter.Limit == 0:
		query = query.Limit(DefaultConsultationPageSize)
	case filter.Limit > 0:
		query = query.Limit(filter.Limit)
	}

	var requests []models.ConsultationRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list consultation requests: %w", err)
	}
	return requests, nil
}

// UpdateConsultationStatus moves a booking to status and records the change
// in the audit log. Moving to contacted stamps ContactedAt the first time.
func UpdateConsultationStatus(db *gorm.DB, id, status string, now time.Time, actx AuditContext) (*models.ConsultationRequest, error) {
	if !models.IsValidConsultationStatus(status) {
		return nil, ErrInvalidConsultationStatus
	}

	var req models.ConsultationRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("failed to fetch consultation request: %w", err)
		}

		previous := req.Status
		updates := map[string]interface{}{"status": status}
		if status == models.ConsultationStatusContacted && req.ContactedAt == nil {
			updates["contacted_at"] = now
			req.ContactedAt = &now
		}
		req.Status = status
		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update consultation request: %w", err)
		}

		return RecordAuditEvent(tx, actx, AuditEvent{
			Action:       models.AuditActionUpdate,
			ResourceType: models.AuditResourceConsultation,
			ResourceID:   req.ID,
			ResourceName: req.Name,
			Description:  fmt.Sprintf("Status changed from %s to %s", previous, status),
			OldValues:    map[string]string{"status": previous},
			NewValues:    map[string]string{"status": status},
		})
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CountConsultationsByStatus returns the number of bookings per status.
func CountConsultationsByStatus(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := db.Model(&models.ConsultationRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count consultation requests: %w", err)
	}

	counts := map[string]int64{
		models.ConsultationStatusNew:       0,
		models.ConsultationStatusContacted: 0,
		models.ConsultationStatusClosed:    0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
