package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TeamID and ApplicationID live here rather than in their own packages
// because Team references its owning Application and Application registers
// its Teams; keeping the identifiers shared avoids an import cycle.

type TeamID uuid.UUID

func NewTeamID() TeamID { return TeamID(uuid.New()) }

func ParseTeamID(s string) (TeamID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return TeamID{}, NewValidation("team.id.invalid", "invalid team id %q", s)
	}
	return TeamID(u), nil
}

func (id TeamID) String() string { return uuid.UUID(id).String() }
func (id TeamID) IsZero() bool   { return id == TeamID{} }

type ApplicationID uuid.UUID

func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ApplicationID{}, NewValidation("application.id.invalid", "invalid application id %q", s)
	}
	return ApplicationID(u), nil
}

func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ApplicationID) IsZero() bool   { return id == ApplicationID{} }
