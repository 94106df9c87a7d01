// Package notification delivers membership notifications. The default
// adapter writes structured log lines; a mail or push adapter satisfies the
// same port.
package notification

import (
	"context"

	"go.uber.org/zap"

	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
)

type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) orgdomain.NotificationService {
	return &logNotifier{log: log.Named("notification")}
}

func (n *logNotifier) OrganizationCreated(ctx context.Context, org *orgdomain.Organization, owner *userdomain.User) error {
	n.log.Info("organization created",
		zap.String("organization_id", org.ID().String()),
		zap.String("organization_name", org.Name().String()),
		zap.String("owner", owner.DisplayName()),
		zap.String("owner_email", owner.Email().String()),
	)
	return nil
}

func (n *logNotifier) UserAdded(ctx context.Context, org *orgdomain.Organization, added *userdomain.User, role orgdomain.Role) error {
	n.log.Info("user added to organization",
		zap.String("organization_id", org.ID().String()),
		zap.String("user", added.DisplayName()),
		zap.String("user_email", added.Email().String()),
		zap.String("role", role.String()),
	)
	return nil
}

func (n *logNotifier) UserRemoved(ctx context.Context, org *orgdomain.Organization, removed *userdomain.User) error {
	n.log.Info("user removed from organization",
		zap.String("organization_id", org.ID().String()),
		zap.String("user", removed.DisplayName()),
		zap.String("user_email", removed.Email().String()),
	)
	return nil
}

func (n *logNotifier) RoleChanged(ctx context.Context, org *orgdomain.Organization, member *userdomain.User, oldRole, newRole orgdomain.Role) error {
	n.log.Info("member role changed",
		zap.String("organization_id", org.ID().String()),
		zap.String("user", member.DisplayName()),
		zap.String("user_email", member.Email().String()),
		zap.String("old_role", oldRole.String()),
		zap.String("new_role", newRole.String()),
	)
	return nil
}

func (n *logNotifier) EmailVerification(ctx context.Context, u *userdomain.User, token string) error {
	n.log.Info("email verification requested",
		zap.String("user_id", u.ID().String()),
		zap.String("email", u.Email().String()),
	)
	return nil
}
