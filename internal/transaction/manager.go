// Package transaction demarcates the atomic unit around each use case. The
// domain layer never sees the database handle; repositories pick the active
// transaction out of the context.
package transaction

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Manager is the outbound transaction port. A function that returns an
// error rolls the whole unit back; nothing is partially persisted.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	// DoNew always opens a fresh transaction, ignoring any ambient one.
	DoNew(ctx context.Context, fn func(ctx context.Context) error) error
}

type ctxKey struct{}

// ContextWithDB binds a transaction handle to the context.
func ContextWithDB(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// DBFromContext returns the transaction bound to ctx, or fallback when the
// caller runs outside a managed transaction.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type gormManager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) Manager {
	return &gormManager{db: db}
}

func (m *gormManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	db := DBFromContext(ctx, m.db)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithDB(ctx, tx))
	})
}

func (m *gormManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	db := DBFromContext(ctx, m.db)
	// sqlite's driver rejects the ReadOnly option; the test database falls
	// back to an ordinary transaction.
	var opts []*sql.TxOptions
	if db.Name() != "sqlite" {
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithDB(ctx, tx))
	}, opts...)
}

func (m *gormManager) DoNew(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithDB(ctx, tx))
	})
}
