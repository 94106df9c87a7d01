package domain

import (
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Event types, used as outbox topics.
const (
	EventCreated       = "team.created"
	EventMemberAdded   = "team.member_added"
	EventMemberRemoved = "team.member_removed"
	EventDeactivated   = "team.deactivated"
)

type Created struct {
	domain.BaseEvent
	TeamID         domain.TeamID
	OrganizationID orgdomain.ID
	Name           string
	CreatorUserID  user.ID
}

func NewCreated(teamID domain.TeamID, orgID orgdomain.ID, name string, creator user.ID) Created {
	return Created{
		BaseEvent:      domain.NewBaseEvent(teamID.String(), EventCreated),
		TeamID:         teamID,
		OrganizationID: orgID,
		Name:           name,
		CreatorUserID:  creator,
	}
}

func (e Created) Payload() map[string]any {
	return map[string]any{
		"team_id":         e.TeamID.String(),
		"organization_id": e.OrganizationID.String(),
		"name":            e.Name,
		"creator_user_id": e.CreatorUserID.String(),
	}
}

type MemberAdded struct {
	domain.BaseEvent
	TeamID domain.TeamID
	UserID user.ID
	Role   Role
}

func NewMemberAdded(teamID domain.TeamID, userID user.ID, role Role) MemberAdded {
	return MemberAdded{
		BaseEvent: domain.NewBaseEvent(teamID.String(), EventMemberAdded),
		TeamID:    teamID,
		UserID:    userID,
		Role:      role,
	}
}

func (e MemberAdded) Payload() map[string]any {
	return map[string]any{
		"team_id": e.TeamID.String(),
		"user_id": e.UserID.String(),
		"role":    e.Role.String(),
	}
}

type MemberRemoved struct {
	domain.BaseEvent
	TeamID domain.TeamID
	UserID user.ID
}

func NewMemberRemoved(teamID domain.TeamID, userID user.ID) MemberRemoved {
	return MemberRemoved{
		BaseEvent: domain.NewBaseEvent(teamID.String(), EventMemberRemoved),
		TeamID:    teamID,
		UserID:    userID,
	}
}

func (e MemberRemoved) Payload() map[string]any {
	return map[string]any{
		"team_id": e.TeamID.String(),
		"user_id": e.UserID.String(),
	}
}

type Deactivated struct {
	domain.BaseEvent
	TeamID domain.TeamID
}

func NewDeactivated(teamID domain.TeamID) Deactivated {
	return Deactivated{
		BaseEvent: domain.NewBaseEvent(teamID.String(), EventDeactivated),
		TeamID:    teamID,
	}
}

func (e Deactivated) Payload() map[string]any {
	return map[string]any{
		"team_id": e.TeamID.String(),
	}
}
