// Package domain contains the Organization aggregate, its value objects and
// the ports it needs. Everything here is persistence- and transport-free.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/debatehub/orgservice/internal/domain"
)

// ID identifies an organization.
type ID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ID{}, domain.NewValidation("organization.id.invalid", "invalid organization id %q", s)
	}
	return ID(u), nil
}

func (id ID) String() string { return uuid.UUID(id).String() }
func (id ID) IsZero() bool   { return id == ID{} }

const (
	nameMinLength = 2
	nameMaxLength = 100
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)

// Name is a validated organization name. Invalid input fails construction,
// it is never silently corrected.
type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, domain.NewValidation("organization.name.empty", "organization name cannot be empty")
	}
	if len(v) < nameMinLength {
		return Name{}, domain.NewValidation("organization.name.tooShort", "organization name must be at least %d characters", nameMinLength)
	}
	if len(v) > nameMaxLength {
		return Name{}, domain.NewValidation("organization.name.tooLong", "organization name cannot exceed %d characters", nameMaxLength)
	}
	if !namePattern.MatchString(v) {
		return Name{}, domain.NewValidation("organization.name.invalidCharacters",
			"organization name may only contain letters, numbers, spaces, hyphens, underscores and dots")
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

const descriptionMaxLength = 500

// Description is an optional organization description. The zero value is the
// "no description" sentinel; blank input normalizes to it.
type Description struct {
	value string
}

func NewDescription(value string) (Description, error) {
	v := strings.TrimSpace(value)
	if len(v) > descriptionMaxLength {
		return Description{}, domain.NewValidation("organization.description.tooLong",
			"organization description cannot exceed %d characters", descriptionMaxLength)
	}
	return Description{value: v}, nil
}

func EmptyDescription() Description { return Description{} }

func (d Description) String() string { return d.value }
func (d Description) IsEmpty() bool  { return d.value == "" }
