package domain

import (
	"context"
	"time"

	user "github.com/debatehub/orgservice/internal/user/domain"
)

// DomainService holds the business rules that need information outside a
// single aggregate and therefore cannot live on Organization itself.
type DomainService interface {
	// IsNameAvailable reports whether no persisted organization has this name.
	IsNameAvailable(ctx context.Context, name Name) (bool, error)

	// ValidateUserCanJoin checks that the user exists, is eligible, and has
	// not reached the per-user organization ceiling.
	ValidateUserCanJoin(ctx context.Context, userID user.ID, orgID ID) error

	// ValidateSettingsValues checks the settings in isolation: maxMembers
	// bounds against policy and that defaultUserRole parses. Use this for
	// organizations that are not persisted yet.
	ValidateSettingsValues(settings Settings) error

	// ValidateSettings runs ValidateSettingsValues and additionally checks
	// maxMembers against the organization's current member count.
	ValidateSettings(ctx context.Context, settings Settings, orgID ID) error

	// HasReachedLimits reports whether the organization is at its member
	// limit. Extensible hook for future quota dimensions.
	HasReachedLimits(org *Organization) bool

	// SuggestRoleForNewMember returns the organization's default role for a
	// prospective member. Placeholder policy, documented as extensible.
	SuggestRoleForNewMember(org *Organization, userID user.ID) (Role, error)

	// ValidateMerge returns the human-readable violations preventing a merge
	// of source into target. An empty slice means mergeable.
	ValidateMerge(source, target *Organization, requester user.ID) []string

	// Merge moves every member of source into target (higher role wins when
	// a user is in both, ties keep target's role) and deactivates source.
	Merge(ctx context.Context, source, target *Organization, requester user.ID) (*Organization, error)

	// TransferOwnership promotes newOwner to OWNER (adding them first if
	// needed) and then demotes currentOwner to ADMIN, so the organization
	// never passes through a zero-owner state.
	TransferOwnership(ctx context.Context, org *Organization, currentOwner, newOwner user.ID) error
}

// NotificationService is the outbound port for telling users about
// membership changes. Dispatch happens after commit and may fail without
// rolling back the committed state change.
type NotificationService interface {
	OrganizationCreated(ctx context.Context, org *Organization, owner *user.User) error
	UserAdded(ctx context.Context, org *Organization, added *user.User, role Role) error
	UserRemoved(ctx context.Context, org *Organization, removed *user.User) error
	RoleChanged(ctx context.Context, org *Organization, member *user.User, oldRole, newRole Role) error
	EmailVerification(ctx context.Context, u *user.User, token string) error
}

// Service is the inbound use-case port. Commands carry raw external input;
// the implementation constructs value objects and returns typed errors.
type Service interface {
	Create(ctx context.Context, cmd CreateCommand) (ID, error)
	Get(ctx context.Context, q GetQuery) (*View, error)
	Update(ctx context.Context, cmd UpdateCommand) error
	AddUser(ctx context.Context, cmd AddUserCommand) error
	UpdateUserRole(ctx context.Context, cmd UpdateUserRoleCommand) error
	RemoveUser(ctx context.Context, cmd RemoveUserCommand) error
	Merge(ctx context.Context, cmd MergeCommand) (ID, error)
	TransferOwnership(ctx context.Context, cmd TransferOwnershipCommand) error
}

type CreateCommand struct {
	Name            string
	Description     string
	CreatorUserID   user.ID
	InitialSettings map[string]any
}

type GetQuery struct {
	OrganizationID   ID
	RequestingUserID user.ID
}

// UpdateCommand applies partial updates: nil fields are left untouched.
type UpdateCommand struct {
	OrganizationID ID
	UpdatedBy      user.ID
	Name           *string
	Description    *string
	Settings       map[string]any
}

type AddUserCommand struct {
	OrganizationID ID
	UserID         user.ID
	Role           Role
	AddedBy        user.ID
}

type UpdateUserRoleCommand struct {
	OrganizationID ID
	UserID         user.ID
	NewRole        Role
	ChangedBy      user.ID
}

type RemoveUserCommand struct {
	OrganizationID ID
	UserID         user.ID
	RemovedBy      user.ID
}

type MergeCommand struct {
	SourceID    ID
	TargetID    ID
	RequestedBy user.ID
}

type TransferOwnershipCommand struct {
	OrganizationID ID
	CurrentOwnerID user.ID
	NewOwnerID     user.ID
}

// View is the read model returned by Get.
type View struct {
	ID          string
	Name        string
	Description string
	Settings    map[string]any
	Active      bool
	MemberCount int
	Members     []MemberView
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MemberView struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      string
	JoinedAt  time.Time
}

func (m MemberView) FullName() string {
	return m.FirstName + " " + m.LastName
}
