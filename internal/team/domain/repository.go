package domain

import (
	"context"

	shared "github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Repository is the outbound persistence port for teams. Lookups return
// (nil, nil) when no team matches.
type Repository interface {
	FindByID(ctx context.Context, id shared.TeamID) (*Team, error)
	FindByOrganization(ctx context.Context, orgID orgdomain.ID) ([]*Team, error)
	FindByMemberUserID(ctx context.Context, userID user.ID) ([]*Team, error)
	Save(ctx context.Context, team *Team) error
}
