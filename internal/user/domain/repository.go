package domain

import "context"

// Repository is the outbound persistence port for users. Lookups return
// (nil, nil) when the user does not exist; callers raise their own
// not-found rule codes.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*User, error)
	FindByEmail(ctx context.Context, email Email) (*User, error)
	FindByIDs(ctx context.Context, ids []ID) ([]*User, error)
	ExistsByEmail(ctx context.Context, email Email) (bool, error)
	FindAllActive(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, user *User) error
}
