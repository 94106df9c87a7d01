// Package service implements the organization domain service and the
// use-case orchestration around the Organization aggregate.
package service

import (
	"context"
	"strings"

	"github.com/debatehub/orgservice/internal/config"
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
)

// domainService holds the business rules that span aggregates or need
// repository lookups.
type domainService struct {
	orgs   orgdomain.Repository
	users  userdomain.Repository
	policy *config.PolicyHolder
}

func NewDomainService(orgs orgdomain.Repository, users userdomain.Repository, policy *config.PolicyHolder) orgdomain.DomainService {
	return &domainService{orgs: orgs, users: users, policy: policy}
}

func (s *domainService) IsNameAvailable(ctx context.Context, name orgdomain.Name) (bool, error) {
	exists, err := s.orgs.ExistsByName(ctx, name)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *domainService) ValidateUserCanJoin(ctx context.Context, userID userdomain.ID, orgID orgdomain.ID) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("user.notFound", "user not found: %s", userID)
	}
	if !u.CanJoinOrganizations() {
		return domain.NewRuleViolation("user.cannotJoin", "user %s is not eligible to join organizations", userID)
	}

	memberships, err := s.orgs.FindByMemberUserID(ctx, userID)
	if err != nil {
		return err
	}
	limit := s.policy.Current().MaxOrganizationsPerUser
	if len(memberships) >= limit {
		return domain.NewRuleViolation("user.organizationLimit",
			"user %s has reached the maximum of %d organizations", userID, limit)
	}
	return nil
}

// ValidateSettingsValues checks the settings without touching storage, so it
// also works for organizations that have never been saved.
func (s *domainService) ValidateSettingsValues(settings orgdomain.Settings) error {
	policy := s.policy.Current()

	if maxMembers := settings.MaxMembers(); maxMembers != nil {
		if *maxMembers < policy.MinMaxMembers {
			return domain.NewRuleViolation("settings.maxMembers.tooLow",
				"maximum members must be at least %d", policy.MinMaxMembers)
		}
		if *maxMembers > policy.MaxMaxMembers {
			return domain.NewRuleViolation("settings.maxMembers.tooHigh",
				"maximum members cannot exceed %d", policy.MaxMaxMembers)
		}
	}

	if _, err := orgdomain.ParseRole(settings.DefaultUserRole()); err != nil {
		return domain.NewRuleViolation("settings.defaultRole.invalid",
			"invalid default role %q", settings.DefaultUserRole())
	}
	return nil
}

func (s *domainService) ValidateSettings(ctx context.Context, settings orgdomain.Settings, orgID orgdomain.ID) error {
	if err := s.ValidateSettingsValues(settings); err != nil {
		return err
	}

	if maxMembers := settings.MaxMembers(); maxMembers != nil {
		org, err := s.orgs.FindByID(ctx, orgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.NewNotFound("organization.notFound", "organization not found: %s", orgID)
		}
		if org.MemberCount() > *maxMembers {
			return domain.NewRuleViolation("settings.maxMembers.exceedsCurrent",
				"cannot set max members below the current member count of %d", org.MemberCount())
		}
	}
	return nil
}

func (s *domainService) HasReachedLimits(org *orgdomain.Organization) bool {
	if limit := org.Settings().MaxMembers(); limit != nil && org.MemberCount() >= *limit {
		return true
	}
	// Further quota dimensions (storage, API calls, plan tiers) would be
	// checked here.
	return false
}

func (s *domainService) SuggestRoleForNewMember(org *orgdomain.Organization, userID userdomain.ID) (orgdomain.Role, error) {
	return orgdomain.ParseRole(org.Settings().DefaultUserRole())
}

func (s *domainService) ValidateMerge(source, target *orgdomain.Organization, requester userdomain.ID) []string {
	var violations []string

	if !source.HasRole(requester, orgdomain.RoleOwner) {
		violations = append(violations, "requesting user must be an owner of the source organization")
	}
	if !target.HasRole(requester, orgdomain.RoleOwner) {
		violations = append(violations, "requesting user must be an owner of the target organization")
	}
	if !source.IsActive() {
		violations = append(violations, "source organization is not active")
	}
	if !target.IsActive() {
		violations = append(violations, "target organization is not active")
	}
	if limit := target.Settings().MaxMembers(); limit != nil {
		combined := target.MemberCount() + source.MemberCount()
		if combined > *limit {
			violations = append(violations, "merge would exceed the target organization's member limit")
		}
	}
	return violations
}

func (s *domainService) Merge(ctx context.Context, source, target *orgdomain.Organization, requester userdomain.ID) (*orgdomain.Organization, error) {
	if violations := s.ValidateMerge(source, target, requester); len(violations) > 0 {
		return nil, domain.NewRuleViolation("organization.merge.invalid",
			"cannot merge organizations: %s", strings.Join(violations, ", "))
	}

	for _, member := range source.Members() {
		if target.IsMember(member.UserID) {
			// Higher role wins; ties keep the target's role.
			existing, _ := target.UserRole(member.UserID)
			if member.Role.Level() > existing.Level() {
				if err := target.UpdateUserRole(member.UserID, member.Role); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := target.AddUser(member.UserID, member.Role); err != nil {
			return nil, err
		}
	}

	// The source survives as a deactivated aggregate; merge never deletes.
	source.Deactivate()
	return target, nil
}

func (s *domainService) TransferOwnership(ctx context.Context, org *orgdomain.Organization, currentOwner, newOwner userdomain.ID) error {
	if !org.HasRole(currentOwner, orgdomain.RoleOwner) {
		return domain.NewUnauthorized("organization.transfer.notOwner", "only owners can transfer ownership")
	}

	u, err := s.users.FindByID(ctx, newOwner)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("user.notFound", "new owner not found: %s", newOwner)
	}
	if !u.IsActive() {
		return domain.NewRuleViolation("user.inactive", "cannot transfer ownership to an inactive user")
	}

	// Add a second owner first, then step down, so the organization never
	// passes through a zero-owner state.
	if !org.IsMember(newOwner) {
		if err := org.AddUser(newOwner, orgdomain.RoleOwner); err != nil {
			return err
		}
	} else if err := org.UpdateUserRole(newOwner, orgdomain.RoleOwner); err != nil {
		return err
	}

	return org.UpdateUserRole(currentOwner, orgdomain.RoleAdmin)
}
