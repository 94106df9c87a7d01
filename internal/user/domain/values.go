// Package domain holds the user entity as seen from the organization
// context: identity, status and the eligibility rules other aggregates
// consult before admitting a user.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/debatehub/orgservice/internal/domain"
)

// ID identifies a user. Generated randomly on creation, parsed from the
// external string form everywhere else.
type ID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ID{}, domain.NewValidation("user.id.invalid", "invalid user id %q", s)
	}
	return ID(u), nil
}

func (id ID) String() string { return uuid.UUID(id).String() }
func (id ID) IsZero() bool   { return id == ID{} }

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a validated, lower-cased address.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Email{}, domain.NewValidation("user.email.empty", "email cannot be empty")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, domain.NewValidation("user.email.invalid", "invalid email address %q", value)
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

const maxNameLength = 100

// Name is a personal name component (first or last name).
type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, domain.NewValidation("user.name.empty", "name cannot be empty")
	}
	if len(v) > maxNameLength {
		return Name{}, domain.NewValidation("user.name.tooLong", "name cannot exceed %d characters", maxNameLength)
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }
