package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	"github.com/debatehub/orgservice/internal/transaction"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
)

// service orchestrates each use case: transaction boundary, authorization,
// aggregate mutation, persistence, event flush, then notification after
// commit.
type service struct {
	orgs          orgdomain.Repository
	users         userdomain.Repository
	domainService orgdomain.DomainService
	notifier      orgdomain.NotificationService
	publisher     domain.Publisher
	tx            transaction.Manager
	clk           clock.Clock
	log           *zap.Logger
}

func NewService(
	orgs orgdomain.Repository,
	users userdomain.Repository,
	domainService orgdomain.DomainService,
	notifier orgdomain.NotificationService,
	publisher domain.Publisher,
	tx transaction.Manager,
	clk clock.Clock,
	log *zap.Logger,
) orgdomain.Service {
	return &service{
		orgs:          orgs,
		users:         users,
		domainService: domainService,
		notifier:      notifier,
		publisher:     publisher,
		tx:            tx,
		clk:           clk,
		log:           log,
	}
}

func (s *service) Create(ctx context.Context, cmd orgdomain.CreateCommand) (orgdomain.ID, error) {
	name, err := orgdomain.NewName(cmd.Name)
	if err != nil {
		return orgdomain.ID{}, err
	}
	description, err := orgdomain.NewDescription(cmd.Description)
	if err != nil {
		return orgdomain.ID{}, err
	}
	if cmd.CreatorUserID.IsZero() {
		return orgdomain.ID{}, domain.NewValidation("organization.creator.required", "creator user id is required")
	}

	var (
		orgID   orgdomain.ID
		org     *orgdomain.Organization
		creator *userdomain.User
	)
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		available, err := s.domainService.IsNameAvailable(ctx, name)
		if err != nil {
			return err
		}
		if !available {
			return domain.NewAlreadyExists("organization.name.taken", "organization name %q is already taken", name)
		}

		creator, err = s.users.FindByID(ctx, cmd.CreatorUserID)
		if err != nil {
			return err
		}
		if creator == nil {
			return domain.NewNotFound("user.notFound", "user not found: %s", cmd.CreatorUserID)
		}
		if !creator.CanJoinOrganizations() {
			return domain.NewRuleViolation("user.cannotCreateOrganization",
				"user cannot create organizations; email verification may be required")
		}

		orgID = orgdomain.NewID()
		org, err = orgdomain.NewOrganization(orgID, name, description, cmd.CreatorUserID, s.clk)
		if err != nil {
			return err
		}
		if cmd.InitialSettings != nil {
			// The aggregate is not persisted yet, so only the value-level
			// checks apply; the member-count check runs against the aggregate
			// itself afterwards.
			settings := orgdomain.SettingsFrom(cmd.InitialSettings)
			if err := s.domainService.ValidateSettingsValues(settings); err != nil {
				return err
			}
			if err := org.UpdateSettings(settings); err != nil {
				return err
			}
			if err := org.ValidateInvariants(); err != nil {
				return err
			}
		}

		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
	if err != nil {
		return orgdomain.ID{}, err
	}

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.OrganizationCreated(ctx, org, creator)
	})
	return orgID, nil
}

func (s *service) Get(ctx context.Context, q orgdomain.GetQuery) (*orgdomain.View, error) {
	var view *orgdomain.View
	err := s.tx.DoReadOnly(ctx, func(ctx context.Context) error {
		org, err := s.findOrganization(ctx, q.OrganizationID)
		if err != nil {
			return err
		}
		if !org.IsMember(q.RequestingUserID) {
			return domain.NewUnauthorized("organization.access.denied",
				"user does not have access to this organization")
		}

		members := org.Members()
		ids := make([]userdomain.ID, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.UserID)
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[userdomain.ID]*userdomain.User, len(users))
		for _, u := range users {
			byID[u.ID()] = u
		}

		memberViews := make([]orgdomain.MemberView, 0, len(members))
		for _, m := range members {
			mv := orgdomain.MemberView{
				UserID:   m.UserID.String(),
				Role:     m.Role.String(),
				JoinedAt: m.JoinedAt,
			}
			// A membership can outlive its user row; keep the entry so the
			// list stays consistent with MemberCount, with profile fields
			// left blank.
			if u, ok := byID[m.UserID]; ok {
				mv.Email = u.Email().String()
				mv.FirstName = u.FirstName().String()
				mv.LastName = u.LastName().String()
			}
			memberViews = append(memberViews, mv)
		}

		view = &orgdomain.View{
			ID:          org.ID().String(),
			Name:        org.Name().String(),
			Description: org.Description().String(),
			Settings:    org.Settings().ToMap(),
			Active:      org.IsActive(),
			MemberCount: org.MemberCount(),
			Members:     memberViews,
			CreatedAt:   org.CreatedAt(),
			UpdatedAt:   org.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Update(ctx context.Context, cmd orgdomain.UpdateCommand) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		org, err := s.findOrganization(ctx, cmd.OrganizationID)
		if err != nil {
			return err
		}
		if !org.HasRole(cmd.UpdatedBy, orgdomain.RoleAdmin) {
			return domain.NewUnauthorized("organization.update.unauthorized",
				"user does not have permission to update this organization")
		}

		if cmd.Name != nil || cmd.Description != nil {
			newName := org.Name()
			if cmd.Name != nil {
				newName, err = orgdomain.NewName(*cmd.Name)
				if err != nil {
					return err
				}
				if newName != org.Name() {
					available, err := s.domainService.IsNameAvailable(ctx, newName)
					if err != nil {
						return err
					}
					if !available {
						return domain.NewAlreadyExists("organization.name.taken",
							"organization name %q is already taken", newName)
					}
				}
			}
			newDescription := org.Description()
			if cmd.Description != nil {
				newDescription, err = orgdomain.NewDescription(*cmd.Description)
				if err != nil {
					return err
				}
			}
			if err := org.Update(newName, newDescription); err != nil {
				return err
			}
		}

		if cmd.Settings != nil {
			settings := orgdomain.SettingsFrom(cmd.Settings)
			if err := s.domainService.ValidateSettings(ctx, settings, org.ID()); err != nil {
				return err
			}
			if err := org.UpdateSettings(settings); err != nil {
				return err
			}
		}

		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
}

func (s *service) AddUser(ctx context.Context, cmd orgdomain.AddUserCommand) error {
	var (
		org   *orgdomain.Organization
		added *userdomain.User
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		org, err = s.findOrganization(ctx, cmd.OrganizationID)
		if err != nil {
			return err
		}

		// The actor needs ADMIN or better, and must outrank the role being
		// granted.
		if !org.HasRole(cmd.AddedBy, orgdomain.RoleAdmin) {
			return domain.NewUnauthorized("organization.addUser.unauthorized",
				"user does not have permission to add users to this organization")
		}
		actorRole, _ := org.UserRole(cmd.AddedBy)
		if !actorRole.CanManage(cmd.Role) {
			return domain.NewUnauthorized("organization.role.cannotAssign",
				"user cannot assign role %s", cmd.Role)
		}

		added, err = s.users.FindByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if added == nil {
			return domain.NewNotFound("user.notFound", "user not found: %s", cmd.UserID)
		}
		if err := s.domainService.ValidateUserCanJoin(ctx, cmd.UserID, cmd.OrganizationID); err != nil {
			return err
		}

		if err := org.AddUser(cmd.UserID, cmd.Role); err != nil {
			return err
		}
		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.UserAdded(ctx, org, added, cmd.Role)
	})
	return nil
}

func (s *service) UpdateUserRole(ctx context.Context, cmd orgdomain.UpdateUserRoleCommand) error {
	var (
		org     *orgdomain.Organization
		member  *userdomain.User
		oldRole orgdomain.Role
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		org, err = s.findOrganization(ctx, cmd.OrganizationID)
		if err != nil {
			return err
		}

		current, ok := org.UserRole(cmd.UserID)
		if !ok {
			return domain.NewNotFound("organization.user.notMember",
				"user %s is not a member of this organization", cmd.UserID)
		}
		oldRole = current

		actorRole, ok := org.UserRole(cmd.ChangedBy)
		if !ok {
			return domain.NewUnauthorized("organization.roleChange.notMember",
				"acting user is not a member of this organization")
		}
		if !actorRole.CanManage(current) || !actorRole.CanManage(cmd.NewRole) {
			return domain.NewUnauthorized("organization.roleChange.unauthorized",
				"user does not have permission to change this member's role")
		}

		member, err = s.users.FindByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.NewNotFound("user.notFound", "user not found: %s", cmd.UserID)
		}

		if err := org.UpdateUserRole(cmd.UserID, cmd.NewRole); err != nil {
			return err
		}
		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.RoleChanged(ctx, org, member, oldRole, cmd.NewRole)
	})
	return nil
}

func (s *service) RemoveUser(ctx context.Context, cmd orgdomain.RemoveUserCommand) error {
	var (
		org     *orgdomain.Organization
		removed *userdomain.User
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		org, err = s.findOrganization(ctx, cmd.OrganizationID)
		if err != nil {
			return err
		}

		// Members may remove themselves; the last-owner guard still applies
		// inside the aggregate.
		if cmd.RemovedBy != cmd.UserID {
			actorRole, ok := org.UserRole(cmd.RemovedBy)
			if !ok {
				return domain.NewUnauthorized("organization.removeUser.notMember",
					"removing user is not a member of this organization")
			}
			targetRole, ok := org.UserRole(cmd.UserID)
			if !ok {
				return domain.NewNotFound("organization.user.notMember",
					"user %s is not a member of this organization", cmd.UserID)
			}
			if !actorRole.CanManage(targetRole) {
				return domain.NewUnauthorized("organization.removeUser.unauthorized",
					"user does not have permission to remove this member")
			}
		}

		removed, err = s.users.FindByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if removed == nil {
			return domain.NewNotFound("user.notFound", "user not found: %s", cmd.UserID)
		}

		if err := org.RemoveUser(cmd.UserID); err != nil {
			return err
		}
		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.UserRemoved(ctx, org, removed)
	})
	return nil
}

func (s *service) Merge(ctx context.Context, cmd orgdomain.MergeCommand) (orgdomain.ID, error) {
	var targetID orgdomain.ID
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		source, err := s.findOrganization(ctx, cmd.SourceID)
		if err != nil {
			return err
		}
		target, err := s.findOrganization(ctx, cmd.TargetID)
		if err != nil {
			return err
		}

		merged, err := s.domainService.Merge(ctx, source, target, cmd.RequestedBy)
		if err != nil {
			return err
		}
		targetID = merged.ID()

		if err := s.orgs.Save(ctx, source); err != nil {
			return err
		}
		if err := s.orgs.Save(ctx, merged); err != nil {
			return err
		}
		if err := s.flushEvents(ctx, source); err != nil {
			return err
		}
		return s.flushEvents(ctx, merged)
	})
	if err != nil {
		return orgdomain.ID{}, err
	}
	return targetID, nil
}

func (s *service) TransferOwnership(ctx context.Context, cmd orgdomain.TransferOwnershipCommand) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		org, err := s.findOrganization(ctx, cmd.OrganizationID)
		if err != nil {
			return err
		}
		if err := s.domainService.TransferOwnership(ctx, org, cmd.CurrentOwnerID, cmd.NewOwnerID); err != nil {
			return err
		}
		if err := s.orgs.Save(ctx, org); err != nil {
			return err
		}
		return s.flushEvents(ctx, org)
	})
}

func (s *service) findOrganization(ctx context.Context, id orgdomain.ID) (*orgdomain.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NewNotFound("organization.notFound", "organization not found: %s", id)
	}
	return org, nil
}

// flushEvents publishes the aggregate's staged events inside the current
// transaction (the outbox makes publication atomic with the save) and marks
// them committed.
func (s *service) flushEvents(ctx context.Context, org *orgdomain.Organization) error {
	events := org.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		return err
	}
	org.MarkEventsCommitted()
	return nil
}

// notify runs after commit. A failure is logged, never propagated; the state
// change already happened.
func (s *service) notify(ctx context.Context, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		s.log.Warn("notification dispatch failed", zap.Error(err))
	}
}
