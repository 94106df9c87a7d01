// Package domain holds the Application aggregate: an org-scoped product
// surface that groups the teams working on it.
package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
)

const (
	minNameLength = 2
	maxNameLength = 100
	maxTeams      = 50
)

// Name is a validated application name.
type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, domain.NewValidation("application.name.empty", "application name cannot be empty")
	}
	if len(v) < minNameLength {
		return Name{}, domain.NewValidation("application.name.tooShort",
			"application name must be at least %d characters", minNameLength)
	}
	if len(v) > maxNameLength {
		return Name{}, domain.NewValidation("application.name.tooLong",
			"application name cannot exceed %d characters", maxNameLength)
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

// Application registers the teams assigned to it. Team membership itself
// lives on the Team aggregate; the application only tracks the assignment.
type Application struct {
	domain.AggregateBase
	id       domain.ApplicationID
	orgID    orgdomain.ID
	name     Name
	settings orgdomain.Settings
	active   bool
	teams    map[domain.TeamID]struct{}
	clk      clock.Clock
}

// NewApplication creates an application with default settings and a Created
// event staged.
func NewApplication(id domain.ApplicationID, orgID orgdomain.ID, name Name, clk clock.Clock) (*Application, error) {
	if id.IsZero() {
		return nil, domain.NewValidation("application.id.required", "application id is required")
	}
	if orgID.IsZero() {
		return nil, domain.NewValidation("application.organization.required",
			"application must belong to an organization")
	}
	if name.IsZero() {
		return nil, domain.NewValidation("application.name.required", "application name is required")
	}

	a := &Application{
		AggregateBase: domain.NewAggregateBase(clk.Now()),
		id:            id,
		orgID:         orgID,
		name:          name,
		settings:      orgdomain.DefaultSettings(),
		active:        true,
		teams:         make(map[domain.TeamID]struct{}),
		clk:           clk,
	}
	a.Record(NewCreated(id, orgID, name.String()))
	return a, nil
}

// RestoreApplication rebuilds an application from persisted state.
func RestoreApplication(id domain.ApplicationID, orgID orgdomain.ID, name Name,
	settings orgdomain.Settings, active bool, teams []domain.TeamID,
	createdAt, updatedAt time.Time, version int64, clk clock.Clock) *Application {
	set := make(map[domain.TeamID]struct{}, len(teams))
	for _, t := range teams {
		set[t] = struct{}{}
	}
	return &Application{
		AggregateBase: domain.RestoreAggregateBase(createdAt, updatedAt, version),
		id:            id,
		orgID:         orgID,
		name:          name,
		settings:      settings,
		active:        active,
		teams:         set,
		clk:           clk,
	}
}

func (a *Application) Rename(newName Name) error {
	if err := a.requireActive("cannot rename an inactive application"); err != nil {
		return err
	}
	if newName.IsZero() {
		return domain.NewValidation("application.name.required", "application name is required")
	}
	if a.name != newName {
		a.name = newName
		a.Touch(a.clk.Now())
		a.Record(NewUpdated(a.id, a.name.String()))
	}
	return nil
}

func (a *Application) UpdateSettings(settings orgdomain.Settings) error {
	if err := a.requireActive("cannot update settings of an inactive application"); err != nil {
		return err
	}
	a.settings = settings
	a.Touch(a.clk.Now())
	return nil
}

// AddTeam registers a team with the application.
func (a *Application) AddTeam(teamID domain.TeamID) error {
	if err := a.requireActive("cannot add teams to an inactive application"); err != nil {
		return err
	}
	if teamID.IsZero() {
		return domain.NewValidation("application.team.required", "team id is required")
	}
	if _, ok := a.teams[teamID]; ok {
		return domain.NewAlreadyExists("application.team.alreadyAdded",
			"team %s is already assigned to this application", teamID)
	}
	if len(a.teams) >= maxTeams {
		return domain.NewRuleViolation("application.teams.limitExceeded",
			"application cannot have more than %d teams", maxTeams)
	}
	a.teams[teamID] = struct{}{}
	a.Touch(a.clk.Now())
	return nil
}

func (a *Application) RemoveTeam(teamID domain.TeamID) error {
	if err := a.requireActive("cannot remove teams from an inactive application"); err != nil {
		return err
	}
	if _, ok := a.teams[teamID]; !ok {
		return domain.NewNotFound("application.team.notAssigned",
			"team %s is not assigned to this application", teamID)
	}
	delete(a.teams, teamID)
	a.Touch(a.clk.Now())
	return nil
}

// Deactivate is idempotent and stages a Deactivated event on the first call.
func (a *Application) Deactivate() {
	if !a.active {
		return
	}
	a.active = false
	a.Touch(a.clk.Now())
	a.Record(NewDeactivated(a.id))
}

func (a *Application) Reactivate() {
	if a.active {
		return
	}
	a.active = true
	a.Touch(a.clk.Now())
}

func (a *Application) HasTeam(teamID domain.TeamID) bool {
	_, ok := a.teams[teamID]
	return ok
}

// Teams returns the assigned team ids sorted for deterministic iteration.
func (a *Application) Teams() []domain.TeamID {
	out := make([]domain.TeamID, 0, len(a.teams))
	for t := range a.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (a *Application) ID() domain.ApplicationID     { return a.id }
func (a *Application) OrganizationID() orgdomain.ID { return a.orgID }
func (a *Application) Name() Name                   { return a.name }
func (a *Application) Settings() orgdomain.Settings { return a.settings }
func (a *Application) IsActive() bool               { return a.active }
func (a *Application) TeamCount() int               { return len(a.teams) }

func (a *Application) requireActive(msg string) error {
	if !a.active {
		return domain.NewRuleViolation("application.inactive", "%s", msg)
	}
	return nil
}
