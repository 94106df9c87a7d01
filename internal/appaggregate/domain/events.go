package domain

import (
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
)

// Event types, used as outbox topics.
const (
	EventCreated     = "application.created"
	EventUpdated     = "application.updated"
	EventDeactivated = "application.deactivated"
)

type Created struct {
	domain.BaseEvent
	ApplicationID  domain.ApplicationID
	OrganizationID orgdomain.ID
	Name           string
}

func NewCreated(appID domain.ApplicationID, orgID orgdomain.ID, name string) Created {
	return Created{
		BaseEvent:      domain.NewBaseEvent(appID.String(), EventCreated),
		ApplicationID:  appID,
		OrganizationID: orgID,
		Name:           name,
	}
}

func (e Created) Payload() map[string]any {
	return map[string]any{
		"application_id":  e.ApplicationID.String(),
		"organization_id": e.OrganizationID.String(),
		"name":            e.Name,
	}
}

type Updated struct {
	domain.BaseEvent
	ApplicationID domain.ApplicationID
	Name          string
}

func NewUpdated(appID domain.ApplicationID, name string) Updated {
	return Updated{
		BaseEvent:     domain.NewBaseEvent(appID.String(), EventUpdated),
		ApplicationID: appID,
		Name:          name,
	}
}

func (e Updated) Payload() map[string]any {
	return map[string]any{
		"application_id": e.ApplicationID.String(),
		"name":           e.Name,
	}
}

type Deactivated struct {
	domain.BaseEvent
	ApplicationID domain.ApplicationID
}

func NewDeactivated(appID domain.ApplicationID) Deactivated {
	return Deactivated{
		BaseEvent:     domain.NewBaseEvent(appID.String(), EventDeactivated),
		ApplicationID: appID,
	}
}

func (e Deactivated) Payload() map[string]any {
	return map[string]any{
		"application_id": e.ApplicationID.String(),
	}
}
