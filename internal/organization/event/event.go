// Package event stores domain events in an outbox table. The rows are
// written inside the same transaction as the aggregate, so an event exists
// exactly when the state change that produced it was committed.
package event

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/debatehub/orgservice/internal/domain"
	"github.com/debatehub/orgservice/internal/transaction"
)

// Record is one outbox row. A relay marks rows published after delivering
// them to the downstream broker.
type Record struct {
	ID          int64             `gorm:"primaryKey"`
	EventID     string            `gorm:"type:text;not null;uniqueIndex:ux_domain_events_event_id"`
	AggregateID string            `gorm:"type:text;not null;index:ix_domain_events_aggregate"`
	EventType   string            `gorm:"type:text;not null"`
	Payload     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	Published   bool              `gorm:"not null;default:false"`
	OccurredAt  time.Time         `gorm:"not null"`
	CreatedAt   time.Time         `gorm:"not null"`
}

func (Record) TableName() string { return "domain_events" }

// Models lists the gorm models this package owns, for schema registration.
func Models() []any {
	return []any{&Record{}}
}

type outboxPublisher struct {
	db   *gorm.DB
	node *snowflake.Node
}

func NewOutboxPublisher(db *gorm.DB, node *snowflake.Node) domain.Publisher {
	return &outboxPublisher{db: db, node: node}
}

func (p *outboxPublisher) Publish(ctx context.Context, evt domain.Event) error {
	return p.PublishAll(ctx, []domain.Event{evt})
}

func (p *outboxPublisher) PublishAll(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]Record, 0, len(events))
	for _, evt := range events {
		rows = append(rows, Record{
			ID:          p.node.Generate().Int64(),
			EventID:     evt.EventID(),
			AggregateID: evt.AggregateID(),
			EventType:   evt.EventType(),
			Payload:     datatypes.JSONMap(evt.Payload()),
			OccurredAt:  evt.OccurredAt(),
		})
	}
	conn := transaction.DBFromContext(ctx, p.db).WithContext(ctx)
	return conn.Create(&rows).Error
}

// Unpublished returns up to limit pending rows in insertion order, for the
// relay that forwards events downstream.
func Unpublished(ctx context.Context, db *gorm.DB, limit int) ([]Record, error) {
	var rows []Record
	err := db.WithContext(ctx).
		Where("published = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkPublished flags the given rows as delivered.
func MarkPublished(ctx context.Context, db *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&Record{}).
		Where("id IN ?", ids).
		Update("published", true).Error
}
