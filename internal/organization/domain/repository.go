package domain

import (
	"context"

	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Repository is the outbound persistence port for the Organization
// aggregate. Lookups return (nil, nil) when the aggregate does not exist.
// Save must detect concurrent writers via the aggregate version and fail
// with a conflict error.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Organization, error)
	FindByName(ctx context.Context, name Name) (*Organization, error)
	ExistsByName(ctx context.Context, name Name) (bool, error)
	FindByMemberUserID(ctx context.Context, userID user.ID) ([]*Organization, error)
	FindAllActive(ctx context.Context) ([]*Organization, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id ID) error
}
