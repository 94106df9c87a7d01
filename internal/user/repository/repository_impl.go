// Package repository persists users with gorm.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	"github.com/debatehub/orgservice/internal/transaction"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
	"github.com/debatehub/orgservice/pkg/db"
)

type userRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	FirstName     string    `gorm:"type:text;not null"`
	LastName      string    `gorm:"type:text;not null"`
	Status        string    `gorm:"type:text;not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

// Models lists the gorm models this adapter owns, for schema registration.
func Models() []any {
	return []any{&userRecord{}}
}

type repository struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewRepository(gdb *gorm.DB, clk clock.Clock) userdomain.Repository {
	return &repository{db: gdb, clk: clk}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return transaction.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *repository) FindByID(ctx context.Context, id userdomain.ID) (*userdomain.User, error) {
	var rec userRecord
	err := r.conn(ctx).First(&rec, "id = ?", uuid.UUID(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(rec)
}

func (r *repository) FindByEmail(ctx context.Context, email userdomain.Email) (*userdomain.User, error) {
	var rec userRecord
	err := r.conn(ctx).First(&rec, "email = ?", email.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(rec)
}

func (r *repository) FindByIDs(ctx context.Context, ids []userdomain.ID) ([]*userdomain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}
	var recs []userRecord
	if err := r.conn(ctx).Where("id IN ?", raw).Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.toDomainAll(recs)
}

func (r *repository) ExistsByEmail(ctx context.Context, email userdomain.Email) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&userRecord{}).Where("email = ?", email.String()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindAllActive(ctx context.Context) ([]*userdomain.User, error) {
	var recs []userRecord
	err := r.conn(ctx).
		Where("status = ?", userdomain.StatusActive.String()).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainAll(recs)
}

func (r *repository) Save(ctx context.Context, u *userdomain.User) error {
	rec := userRecord{
		ID:            uuid.UUID(u.ID()),
		Email:         u.Email().String(),
		FirstName:     u.FirstName().String(),
		LastName:      u.LastName().String(),
		Status:        u.Status().String(),
		EmailVerified: u.EmailVerified(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
	err := r.conn(ctx).Save(&rec).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.NewAlreadyExists("user.email.taken", "email %s is already registered", u.Email())
	}
	return err
}

func (r *repository) toDomain(rec userRecord) (*userdomain.User, error) {
	email, err := userdomain.NewEmail(rec.Email)
	if err != nil {
		return nil, err
	}
	firstName, err := userdomain.NewName(rec.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := userdomain.NewName(rec.LastName)
	if err != nil {
		return nil, err
	}
	status, err := userdomain.ParseStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	return userdomain.RestoreUser(
		userdomain.ID(rec.ID),
		email,
		firstName,
		lastName,
		status,
		rec.EmailVerified,
		rec.CreatedAt,
		rec.UpdatedAt,
		r.clk,
	), nil
}

func (r *repository) toDomainAll(recs []userRecord) ([]*userdomain.User, error) {
	out := make([]*userdomain.User, 0, len(recs))
	for _, rec := range recs {
		u, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
