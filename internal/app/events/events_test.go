package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
	"scribe/internal/app/testutil"
)

func TestRedisPublisher_RecordSaved(t *testing.T) {
	mini := miniredis.RunT(t)
	ctx := context.Background()

	publisher, err := NewRedisPublisher(ctx, RedisConfig{Addr: mini.Addr(), Channel: "scribe:records"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	subscriber := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = subscriber.Close() })
	sub := subscriber.Subscribe(ctx, "scribe:records")
	t.Cleanup(func() { _ = sub.Close() })
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	record := testutil.TestRecords[0]
	require.NoError(t, publisher.RecordSaved(ctx, record, 7))

	select {
	case msg := <-sub.Channel():
		var event RecordEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, EventRecordSaved, event.Type)
		assert.Equal(t, 7, event.Total)
		assert.Equal(t, record.Filename, event.Record.Filename)
		assert.Equal(t, record.TranscriptionText, event.Record.TranscriptionText)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestNewRedisPublisher_Unreachable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	_, err := NewRedisPublisher(context.Background(), RedisConfig{Addr: addr, Channel: "c"})
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) RecordSaved(ctx context.Context, record model.TranscriptionRecord, total int) error {
	return m.Called(ctx, record, total).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func TestPublishingStore_Append(t *testing.T) {
	store := testutil.NewCSVStore(t)
	publisher := &mockPublisher{}
	publisher.Test(t)
	record := testutil.TestRecords[1]
	publisher.On("RecordSaved", mock.Anything, record, 1).Return(errors.New("redis down")).Once()

	s := NewPublishingStore(store, publisher, nil, nil)

	total, err := s.Append(context.Background(), record)
	require.NoError(t, err, "publish failure must not fail the append")
	assert.Equal(t, 1, total)
	publisher.AssertExpectations(t)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPublishingStore_AppendFailureSkipsPublish(t *testing.T) {
	inner := testutil.NewMockRecordStore(t)
	inner.On("Append", mock.Anything, mock.Anything).Return(0, apperrors.ErrStorageIO.Withf("disk full"))
	publisher := &mockPublisher{}
	publisher.Test(t)

	s := NewPublishingStore(inner, publisher, nil, nil)

	_, err := s.Append(context.Background(), testutil.TestRecords[0])
	assert.ErrorIs(t, err, apperrors.ErrStorageIO)
	publisher.AssertNotCalled(t, "RecordSaved", mock.Anything, mock.Anything, mock.Anything)
}
