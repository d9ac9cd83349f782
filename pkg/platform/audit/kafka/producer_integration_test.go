//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "voltid/pkg/domain"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/audit/store/postgres"
	"voltid/pkg/platform/audit/worker"
	"voltid/pkg/platform/tx"
	"voltid/pkg/testutil/containers"
)

func TestOutboxRelayToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mgr := containers.GetManager()
	pg := mgr.GetPostgres(t)
	rp := mgr.GetRedpanda(t)
	require.NoError(t, pg.TruncateTables(ctx, "outbox"))

	topic := "audit-" + uuid.NewString()[:8]
	producer, err := NewProducer(rp.Brokers, topic)
	require.NoError(t, err)
	defer producer.Close()
	require.NoError(t, producer.EnsureTopic(ctx, 1, 1))
	require.NoError(t, producer.EnsureTopic(ctx, 1, 1))

	store := postgres.New(pg.DB)
	userID := id.UserID(uuid.New())
	require.NoError(t, store.Append(ctx, audit.Event{
		UserID:    userID,
		Action:    string(audit.EventUserRegistered),
		Timestamp: time.Now(),
	}))

	w := worker.NewWorker(store, producer, tx.NewManager(pg.DB))
	n, err := w.RelayOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, userID.String(), string(records[0].Key))
}
