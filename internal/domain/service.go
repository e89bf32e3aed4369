package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Service.
var (
	ErrEmptyServiceID          = errors.New("service ID cannot be empty")
	ErrEmptyServiceName        = errors.New("service name is required")
	ErrServiceNameTooShort     = errors.New("service name must be at least 3 characters long")
	ErrServiceNameTooLong      = errors.New("service name must be no greater than 150 characters long")
	ErrEmptyServiceDescription = errors.New("service description is required")
	ErrDescriptionTooShort     = errors.New("service description must be at least 10 characters long")
	ErrDescriptionTooLong      = errors.New("service description must be no greater than 2000 characters long")
	ErrEmptyServiceDuration    = errors.New("service duration is required")
	ErrDurationTooShort        = errors.New("service duration must be at least 10 minutes")
	ErrDurationTooLong         = errors.New("service duration must be no greater than 480 minutes")
	ErrEmptyServicePrice       = errors.New("service price is required")
	ErrPriceNotPositive        = errors.New("service price must be a positive number")
	ErrPriceFormat             = errors.New("service price must have a maximum of 5 digits with up to 2 decimal places")
	ErrNegativeMinimumNotice   = errors.New("minimum notice cannot be negative")
)

const (
	minServiceNameLen = 3
	maxServiceNameLen = 150
	minDescriptionLen = 10
	maxDescriptionLen = 2000
	minDurationMins   = 10
	maxDurationMins   = 480
)

// priceRegexp bounds the price to at most 3 integer digits and 2 decimal
// places, matching the DECIMAL(5,2) column.
var priceRegexp = regexp.MustCompile(`^\d{1,3}(\.\d{1,2})?$`)

// Service represents a bookable salon offering: a haircut, colouring,
// treatment and so on. Services form the foundation of the booking system.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// DurationMinutes is how long the service takes, used for scheduling.
	DurationMinutes int `json:"duration_minutes"`
	// Price is the cost of the service in GBP.
	Price float64 `json:"price"`
	// Availability indicates whether the service can currently be booked,
	// e.g. seasonal offerings may be switched off.
	Availability bool `json:"availability"`
	// MinimumNoticeHours is the shortest notice at which the service may
	// be booked. Nil means no restriction.
	MinimumNoticeHours *int      `json:"minimum_notice_hours,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewService creates a new Service with a generated ID, UTC timestamps and
// availability switched on. Returns a validation error if any field rule fails.
func NewService(name, description string, durationMinutes int, price float64) (*Service, error) {
	now := time.Now().UTC()
	svc := &Service{
		ID:              uuid.New(),
		Name:            name,
		Description:     description,
		DurationMinutes: durationMinutes,
		Price:           price,
		Availability:    true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := svc.Validate(); err != nil {
		return nil, err
	}

	return svc, nil
}

// Validate checks the Service against create-mode rules.
func (s *Service) Validate() error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyServiceID)
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingCreatedAt)
	}
	if s.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingUpdatedAt)
	}
	if err := ValidateServiceName(s.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateServiceDescription(s.Description); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateServiceDuration(s.DurationMinutes); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateServicePrice(s.Price); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if s.MinimumNoticeHours != nil && *s.MinimumNoticeHours < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNegativeMinimumNotice)
	}
	return nil
}

// ServiceUpdate carries the mutable Service fields for a partial update.
// Nil fields are left untouched.
type ServiceUpdate struct {
	ID                 *uuid.UUID `json:"id,omitempty"`
	Name               *string    `json:"name,omitempty"`
	Description        *string    `json:"description,omitempty"`
	DurationMinutes    *int       `json:"duration_minutes,omitempty"`
	Price              *float64   `json:"price,omitempty"`
	Availability       *bool      `json:"availability,omitempty"`
	MinimumNoticeHours *int       `json:"minimum_notice_hours,omitempty"`
}

// Validate checks the update payload against update-mode rules.
func (p *ServiceUpdate) Validate() error {
	if p.ID != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrIDImmutable)
	}
	if p.Name != nil {
		if err := ValidateServiceName(*p.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Description != nil {
		if err := ValidateServiceDescription(*p.Description); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.DurationMinutes != nil {
		if err := ValidateServiceDuration(*p.DurationMinutes); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Price != nil {
		if err := ValidateServicePrice(*p.Price); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.MinimumNoticeHours != nil && *p.MinimumNoticeHours < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNegativeMinimumNotice)
	}
	return nil
}

// Apply overwrites the service's fields with the non-nil fields of the update.
func (p *ServiceUpdate) Apply(s *Service) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = *p.DurationMinutes
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Availability != nil {
		s.Availability = *p.Availability
	}
	if p.MinimumNoticeHours != nil {
		s.MinimumNoticeHours = p.MinimumNoticeHours
	}
}

// ValidateServiceName checks the name length bounds.
func ValidateServiceName(name string) error {
	if name == "" {
		return ErrEmptyServiceName
	}
	if len(name) < minServiceNameLen {
		return ErrServiceNameTooShort
	}
	if len(name) > maxServiceNameLen {
		return ErrServiceNameTooLong
	}
	return nil
}

// ValidateServiceDescription checks the description length bounds.
func ValidateServiceDescription(description string) error {
	if description == "" {
		return ErrEmptyServiceDescription
	}
	if len(description) < minDescriptionLen {
		return ErrDescriptionTooShort
	}
	if len(description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateServiceDuration checks the duration range. The lower bound is
// exclusive: a 10 minute service is too short to schedule.
func ValidateServiceDuration(minutes int) error {
	if minutes == 0 {
		return ErrEmptyServiceDuration
	}
	if minutes <= minDurationMins {
		return ErrDurationTooShort
	}
	if minutes > maxDurationMins {
		return ErrDurationTooLong
	}
	return nil
}

// ValidateServicePrice checks that the price is positive and fits at most
// 3 integer digits with up to 2 decimal places.
func ValidateServicePrice(price float64) error {
	if price == 0 {
		return ErrEmptyServicePrice
	}
	if price < 0 {
		return ErrPriceNotPositive
	}
	rendered := strconv.FormatFloat(price, 'f', -1, 64)
	if !priceRegexp.MatchString(rendered) {
		return ErrPriceFormat
	}
	return nil
}
