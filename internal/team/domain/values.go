package domain

import (
	"strings"

	"github.com/debatehub/orgservice/internal/domain"
)

const (
	minNameLength        = 2
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Name is a validated team name.
type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, domain.NewValidation("team.name.empty", "team name cannot be empty")
	}
	if len(v) < minNameLength {
		return Name{}, domain.NewValidation("team.name.tooShort", "team name must be at least %d characters", minNameLength)
	}
	if len(v) > maxNameLength {
		return Name{}, domain.NewValidation("team.name.tooLong", "team name cannot exceed %d characters", maxNameLength)
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

// Description is optional free text about the team.
type Description struct {
	value string
}

func NewDescription(value string) (Description, error) {
	v := strings.TrimSpace(value)
	if len(v) > maxDescriptionLength {
		return Description{}, domain.NewValidation("team.description.tooLong",
			"team description cannot exceed %d characters", maxDescriptionLength)
	}
	return Description{value: v}, nil
}

func EmptyDescription() Description { return Description{} }

func (d Description) String() string { return d.value }
func (d Description) IsZero() bool   { return d.value == "" }
