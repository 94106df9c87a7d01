// Package repository persists the Organization aggregate with gorm: one row
// per organization plus one row per member, guarded by an optimistic version
// counter.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	"github.com/debatehub/orgservice/internal/transaction"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
	"github.com/debatehub/orgservice/pkg/db"
)

type organizationRecord struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name        string            `gorm:"type:text;not null;uniqueIndex:ux_organizations_name"`
	Description string            `gorm:"type:text"`
	Settings    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	Active      bool              `gorm:"not null;default:true"`
	Version     int64             `gorm:"not null;default:0"`
	CreatedAt   time.Time         `gorm:"not null"`
	UpdatedAt   time.Time         `gorm:"not null"`
}

func (organizationRecord) TableName() string { return "organizations" }

type memberRecord struct {
	OrgID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"type:text;not null"`
	JoinedAt time.Time `gorm:"not null"`
}

func (memberRecord) TableName() string { return "organization_members" }

// Models lists the gorm models this adapter owns, for schema registration.
func Models() []any {
	return []any{&organizationRecord{}, &memberRecord{}}
}

type repository struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewRepository(gdb *gorm.DB, clk clock.Clock) orgdomain.Repository {
	return &repository{db: gdb, clk: clk}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return transaction.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *repository) FindByID(ctx context.Context, id orgdomain.ID) (*orgdomain.Organization, error) {
	var rec organizationRecord
	err := r.conn(ctx).First(&rec, "id = ?", uuid.UUID(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.load(ctx, rec)
}

func (r *repository) FindByName(ctx context.Context, name orgdomain.Name) (*orgdomain.Organization, error) {
	var rec organizationRecord
	err := r.conn(ctx).First(&rec, "name = ?", name.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.load(ctx, rec)
}

func (r *repository) ExistsByName(ctx context.Context, name orgdomain.Name) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&organizationRecord{}).Where("name = ?", name.String()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindByMemberUserID(ctx context.Context, userID userdomain.ID) ([]*orgdomain.Organization, error) {
	var recs []organizationRecord
	err := r.conn(ctx).
		Joins("JOIN organization_members m ON m.org_id = organizations.id").
		Where("m.user_id = ?", uuid.UUID(userID)).
		Order("organizations.created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.loadAll(ctx, recs)
}

func (r *repository) FindAllActive(ctx context.Context) ([]*orgdomain.Organization, error) {
	var recs []organizationRecord
	err := r.conn(ctx).Where("active = ?", true).Order("created_at ASC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.loadAll(ctx, recs)
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&organizationRecord{}).Count(&count).Error
	return count, err
}

// Save inserts the aggregate on first save (version 0) and otherwise updates
// it with a version check; a lost race surfaces as a conflict error. Member
// rows are rewritten to mirror the aggregate's roster.
func (r *repository) Save(ctx context.Context, org *orgdomain.Organization) error {
	conn := r.conn(ctx)
	rec := toRecord(org)

	if org.Version() == 0 {
		rec.Version = 1
		if err := conn.Create(&rec).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.NewAlreadyExists("organization.name.taken",
					"organization name %q is already taken", org.Name())
			}
			return err
		}
	} else {
		rec.Version = org.Version() + 1
		res := conn.Model(&organizationRecord{}).
			Where("id = ? AND version = ?", rec.ID, org.Version()).
			Updates(map[string]any{
				"name":        rec.Name,
				"description": rec.Description,
				"settings":    rec.Settings,
				"active":      rec.Active,
				"version":     rec.Version,
				"updated_at":  rec.UpdatedAt,
			})
		if res.Error != nil {
			if db.IsDuplicateKeyErr(res.Error) {
				return domain.NewAlreadyExists("organization.name.taken",
					"organization name %q is already taken", org.Name())
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewConflict("organization.concurrentUpdate",
				"organization %s was modified concurrently", org.ID())
		}
	}

	if err := conn.Where("org_id = ?", rec.ID).Delete(&memberRecord{}).Error; err != nil {
		return err
	}
	members := org.Members()
	if len(members) > 0 {
		rows := make([]memberRecord, 0, len(members))
		for _, m := range members {
			rows = append(rows, memberRecord{
				OrgID:    rec.ID,
				UserID:   uuid.UUID(m.UserID),
				Role:     m.Role.String(),
				JoinedAt: m.JoinedAt,
			})
		}
		if err := conn.Create(&rows).Error; err != nil {
			return err
		}
	}

	org.SetVersion(rec.Version)
	return nil
}

func (r *repository) Delete(ctx context.Context, id orgdomain.ID) error {
	conn := r.conn(ctx)
	if err := conn.Where("org_id = ?", uuid.UUID(id)).Delete(&memberRecord{}).Error; err != nil {
		return err
	}
	return conn.Delete(&organizationRecord{}, "id = ?", uuid.UUID(id)).Error
}

func (r *repository) load(ctx context.Context, rec organizationRecord) (*orgdomain.Organization, error) {
	var memberRows []memberRecord
	err := r.conn(ctx).Where("org_id = ?", rec.ID).Order("joined_at ASC").Find(&memberRows).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(rec, memberRows)
}

func (r *repository) loadAll(ctx context.Context, recs []organizationRecord) ([]*orgdomain.Organization, error) {
	out := make([]*orgdomain.Organization, 0, len(recs))
	for _, rec := range recs {
		org, err := r.load(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, org)
	}
	return out, nil
}

func toRecord(org *orgdomain.Organization) organizationRecord {
	return organizationRecord{
		ID:          uuid.UUID(org.ID()),
		Name:        org.Name().String(),
		Description: org.Description().String(),
		Settings:    datatypes.JSONMap(org.Settings().ToMap()),
		Active:      org.IsActive(),
		CreatedAt:   org.CreatedAt(),
		UpdatedAt:   org.UpdatedAt(),
	}
}

func (r *repository) toDomain(rec organizationRecord, memberRows []memberRecord) (*orgdomain.Organization, error) {
	name, err := orgdomain.NewName(rec.Name)
	if err != nil {
		return nil, err
	}
	description, err := orgdomain.NewDescription(rec.Description)
	if err != nil {
		return nil, err
	}

	members := make([]orgdomain.Member, 0, len(memberRows))
	for _, row := range memberRows {
		role, err := orgdomain.ParseRole(row.Role)
		if err != nil {
			return nil, err
		}
		members = append(members, orgdomain.Member{
			UserID:   userdomain.ID(row.UserID),
			Role:     role,
			JoinedAt: row.JoinedAt,
		})
	}

	return orgdomain.RestoreOrganization(
		orgdomain.ID(rec.ID),
		name,
		description,
		orgdomain.SettingsFrom(rec.Settings),
		rec.Active,
		members,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.Version,
		r.clk,
	), nil
}
