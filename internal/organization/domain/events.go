package domain

import (
	"github.com/debatehub/orgservice/internal/domain"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Event types, used as outbox topics.
const (
	EventCreated     = "organization.created"
	EventUpdated     = "organization.updated"
	EventUserAdded   = "organization.user_added"
	EventUserRemoved = "organization.user_removed"
)

type Created struct {
	domain.BaseEvent
	OrganizationID ID
	Name           string
	Description    string
	CreatorUserID  user.ID
}

func NewCreated(orgID ID, name, description string, creator user.ID) Created {
	return Created{
		BaseEvent:      domain.NewBaseEvent(orgID.String(), EventCreated),
		OrganizationID: orgID,
		Name:           name,
		Description:    description,
		CreatorUserID:  creator,
	}
}

func (e Created) Payload() map[string]any {
	return map[string]any{
		"organization_id": e.OrganizationID.String(),
		"name":            e.Name,
		"description":     e.Description,
		"creator_user_id": e.CreatorUserID.String(),
	}
}

type Updated struct {
	domain.BaseEvent
	OrganizationID ID
	Name           string
	Description    string
}

func NewUpdated(orgID ID, name, description string) Updated {
	return Updated{
		BaseEvent:      domain.NewBaseEvent(orgID.String(), EventUpdated),
		OrganizationID: orgID,
		Name:           name,
		Description:    description,
	}
}

func (e Updated) Payload() map[string]any {
	return map[string]any{
		"organization_id": e.OrganizationID.String(),
		"name":            e.Name,
		"description":     e.Description,
	}
}

type UserAdded struct {
	domain.BaseEvent
	OrganizationID ID
	UserID         user.ID
	Role           Role
}

func NewUserAdded(orgID ID, userID user.ID, role Role) UserAdded {
	return UserAdded{
		BaseEvent:      domain.NewBaseEvent(orgID.String(), EventUserAdded),
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}
}

func (e UserAdded) Payload() map[string]any {
	return map[string]any{
		"organization_id": e.OrganizationID.String(),
		"user_id":         e.UserID.String(),
		"role":            e.Role.String(),
	}
}

type UserRemoved struct {
	domain.BaseEvent
	OrganizationID ID
	UserID         user.ID
}

func NewUserRemoved(orgID ID, userID user.ID) UserRemoved {
	return UserRemoved{
		BaseEvent:      domain.NewBaseEvent(orgID.String(), EventUserRemoved),
		OrganizationID: orgID,
		UserID:         userID,
	}
}

func (e UserRemoved) Payload() map[string]any {
	return map[string]any{
		"organization_id": e.OrganizationID.String(),
		"user_id":         e.UserID.String(),
	}
}
