package event

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	"github.com/debatehub/orgservice/internal/transaction"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
	"github.com/debatehub/orgservice/pkg/db"
)

func setup(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(Models()...))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return conn, node
}

func TestPublishAllWritesOutboxRows(t *testing.T) {
	conn, node := setup(t)
	pub := NewOutboxPublisher(conn, node)
	ctx := context.Background()

	orgID := orgdomain.NewID()
	userID := userdomain.NewID()

	// Publishing nothing touches nothing.
	require.NoError(t, pub.PublishAll(ctx, nil))

	require.NoError(t, pub.Publish(ctx, orgdomain.NewUserAdded(orgID, userID, orgdomain.RoleMember)))

	rows, err := Unpublished(ctx, conn, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, orgdomain.EventUserAdded, rows[0].EventType)
	assert.Equal(t, orgID.String(), rows[0].AggregateID)
	assert.Equal(t, userID.String(), rows[0].Payload["user_id"])
	assert.False(t, rows[0].Published)
}

func TestPublishJoinsAmbientTransaction(t *testing.T) {
	conn, node := setup(t)
	pub := NewOutboxPublisher(conn, node)
	mgr := transaction.NewManager(conn)
	ctx := context.Background()

	orgID := orgdomain.NewID()
	err := mgr.Do(ctx, func(ctx context.Context) error {
		if err := pub.Publish(ctx, orgdomain.NewUserRemoved(orgID, userdomain.NewID())); err != nil {
			return err
		}
		return assert.AnError // roll the transaction back
	})
	require.Error(t, err)

	rows, err := Unpublished(ctx, conn, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMarkPublished(t *testing.T) {
	conn, node := setup(t)
	pub := NewOutboxPublisher(conn, node)
	ctx := context.Background()

	orgID := orgdomain.NewID()
	require.NoError(t, pub.Publish(ctx, orgdomain.NewUserRemoved(orgID, userdomain.NewID())))
	require.NoError(t, pub.Publish(ctx, orgdomain.NewUserRemoved(orgID, userdomain.NewID())))

	rows, err := Unpublished(ctx, conn, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NoError(t, MarkPublished(ctx, conn, []int64{rows[0].ID}))

	remaining, err := Unpublished(ctx, conn, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, rows[1].ID, remaining[0].ID)
}
