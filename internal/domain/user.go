package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Common validation errors for User.
var (
	ErrEmptyUserID           = errors.New("user ID cannot be empty")
	ErrEmptyUsername         = errors.New("username is required")
	ErrUsernameTooShort      = errors.New("username must be at least 5 characters long")
	ErrEmptyEmail            = errors.New("email is required")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrEmailDomainNotAllowed = errors.New("email domain is not allowed")
	ErrEmptyPassword         = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUppercase   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit       = errors.New("password must contain at least one digit")
	ErrPasswordNoSpecial     = errors.New("password must contain at least one special character")
	ErrNameEmpty             = errors.New("name cannot be empty")
	ErrNameNotAlphabetic     = errors.New("name must contain only alphabetic characters")
	ErrNameTooLong           = errors.New("name must be between 1 and 30 characters long")
)

// Common validation errors for profile pictures.
var (
	ErrPictureTypeNotAllowed  = errors.New("uploaded file is not a supported image type")
	ErrPictureTooLarge        = errors.New("image file size should not exceed 2MB")
	ErrPictureDimensionsLarge = errors.New("image dimensions should not exceed 1024x1024 pixels")
)

// AllowedEmailDomains is the whitelist of email domains accepted at
// registration. Kept deliberately small while the salon runs invite-only.
var AllowedEmailDomains = []string{"gmail.com", "test.com"}

// allowedPictureTypes are the MIME types accepted for profile pictures.
var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

const (
	maxPictureBytes     = 2 * 1024 * 1024
	maxPictureDimension = 1024
)

var (
	emailRegexp          = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	passwordSpecialRunes = `!@#$%^&*(),.?":{}|<>`
)

// ProfilePicture holds metadata about an uploaded profile picture.
// The binary itself is stored outside the database; only the metadata
// is validated and persisted.
type ProfilePicture struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// User represents an individual interacting with the salon: customers who
// book services as well as staff managing the system.
type User struct {
	ID             uuid.UUID       `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Password       string          `json:"-"` // Plaintext, only set transiently during create/update
	HashedPassword string          `json:"-"` // Never expose the hash in JSON
	FirstName      *string         `json:"first_name,omitempty"`
	LastName       *string         `json:"last_name,omitempty"`
	ProfilePicture *ProfilePicture `json:"profile_picture,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewUser creates a new User with a generated ID and server-side UTC
// timestamps. The plaintext password is carried on the struct for the
// store layer to hash; it is never persisted as-is.
// Returns a validation error if any field rule fails.
func NewUser(username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User against create-mode rules.
// Returns the first violated rule as an error wrapping ErrValidation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyUserID)
	}
	if u.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingCreatedAt)
	}
	if u.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingUpdatedAt)
	}
	if err := ValidateUsername(u.Username); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateEmail(u.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	// An already-persisted user only carries the hash; fresh input carries
	// the plaintext and must meet the complexity rules.
	if u.Password != "" {
		if err := ValidatePassword(u.Password); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	} else if u.HashedPassword == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
	}
	if u.FirstName != nil {
		if err := ValidatePersonName(*u.FirstName); err != nil {
			return fmt.Errorf("%w: first name: %w", ErrValidation, err)
		}
	}
	if u.LastName != nil {
		if err := ValidatePersonName(*u.LastName); err != nil {
			return fmt.Errorf("%w: last name: %w", ErrValidation, err)
		}
	}
	if u.ProfilePicture != nil {
		if err := ValidateProfilePicture(u.ProfilePicture); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// UserUpdate carries the mutable User fields for a partial update.
// Nil fields are left untouched. ID is present only so that payloads
// attempting to change it can be rejected.
type UserUpdate struct {
	ID             *uuid.UUID      `json:"id,omitempty"`
	Username       *string         `json:"username,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Password       *string         `json:"password,omitempty"`
	FirstName      *string         `json:"first_name,omitempty"`
	LastName       *string         `json:"last_name,omitempty"`
	ProfilePicture *ProfilePicture `json:"profile_picture,omitempty"`
}

// Validate checks the update payload against update-mode rules: the ID is
// immutable, and each provided field must satisfy its create-mode rule.
func (p *UserUpdate) Validate() error {
	if p.ID != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrIDImmutable)
	}
	if p.Username != nil {
		if err := ValidateUsername(*p.Username); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Password != nil {
		if err := ValidatePassword(*p.Password); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.FirstName != nil {
		if err := ValidatePersonName(*p.FirstName); err != nil {
			return fmt.Errorf("%w: first name: %w", ErrValidation, err)
		}
	}
	if p.LastName != nil {
		if err := ValidatePersonName(*p.LastName); err != nil {
			return fmt.Errorf("%w: last name: %w", ErrValidation, err)
		}
	}
	if p.ProfilePicture != nil {
		if err := ValidateProfilePicture(p.ProfilePicture); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// Apply overwrites the user's fields with the non-nil fields of the update.
func (p *UserUpdate) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = p.ProfilePicture
	}
}

// ValidateUsername checks the username against the minimum length rule.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) < 5 {
		return ErrUsernameTooShort
	}
	return nil
}

// ValidateEmail checks the basic email shape and that the domain is
// whitelisted.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailRegexp.MatchString(email) {
		return ErrInvalidEmail
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	for _, allowed := range AllowedEmailDomains {
		if domain == allowed {
			return nil
		}
	}
	return ErrEmailDomainNotAllowed
}

// ValidatePassword checks the plaintext password complexity rules:
// at least 8 characters with one uppercase letter, one lowercase letter,
// one digit and one special character.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialRunes, r):
			hasSpecial = true
		}
	}
	switch {
	case !hasUpper:
		return ErrPasswordNoUppercase
	case !hasLower:
		return ErrPasswordNoLowercase
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasSpecial:
		return ErrPasswordNoSpecial
	}
	return nil
}

// ValidatePersonName checks a first/last name: alphabetic only, 1 to 30
// characters. Callers treat an absent (nil) name as no name at all.
func ValidatePersonName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return ErrNameNotAlphabetic
		}
	}
	if len([]rune(name)) > 30 {
		return ErrNameTooLong
	}
	return nil
}

// ValidateProfilePicture checks uploaded picture metadata: MIME type,
// file size and pixel dimensions.
func ValidateProfilePicture(pic *ProfilePicture) error {
	if !strings.HasPrefix(pic.ContentType, "image/") || !allowedPictureTypes[pic.ContentType] {
		return ErrPictureTypeNotAllowed
	}
	if pic.SizeBytes > maxPictureBytes {
		return ErrPictureTooLarge
	}
	if pic.Width > maxPictureDimension || pic.Height > maxPictureDimension {
		return ErrPictureDimensionsLarge
	}
	return nil
}
