package mq

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/pkg/errno"
)

type fakeAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type handlerFunc func(ctx context.Context, msg *ReconcileMessage) error

func (h handlerFunc) HandleReconcile(ctx context.Context, msg *ReconcileMessage) error {
	return h(ctx, msg)
}

func TestHandleDelivery(t *testing.T) {
	body, err := json.Marshal(&ReconcileMessage{Entity: "video", TargetID: 7, Counter: "likesCount", Delta: 1})
	require.NoError(t, err)

	var got *ReconcileMessage
	ack := &fakeAck{}
	handleDelivery(context.Background(), body, ack, handlerFunc(func(_ context.Context, msg *ReconcileMessage) error {
		got = msg
		return nil
	}))
	assert.True(t, ack.acked)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.TargetID)

	ack = &fakeAck{}
	handleDelivery(context.Background(), body, ack, handlerFunc(func(context.Context, *ReconcileMessage) error {
		return errors.New("db down")
	}))
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)

	ack = &fakeAck{}
	handleDelivery(context.Background(), []byte("{"), ack, handlerFunc(func(context.Context, *ReconcileMessage) error {
		t.Fatal("handler must not run for malformed body")
		return nil
	}))
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestHandleDeliveryDropsInvalidTask(t *testing.T) {
	body, err := json.Marshal(&ReconcileMessage{Entity: "video", TargetID: 7, Counter: "bogus"})
	require.NoError(t, err)

	ack := &fakeAck{}
	handleDelivery(context.Background(), body, ack, handlerFunc(func(context.Context, *ReconcileMessage) error {
		return errors.WithMessage(errno.InvalidArgumentErr.WithMessage("unknown counter video.bogus"), "counter.Recompute failed")
	}))
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.False(t, ack.acked)

	ack = &fakeAck{}
	handleDelivery(context.Background(), body, ack, handlerFunc(func(context.Context, *ReconcileMessage) error {
		return errors.WithMessage(errno.DependencyFailureErr, "acquire reconcile lock failed")
	}))
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestNewEngagementEvent(t *testing.T) {
	e := NewEngagementEvent(EventLike, 1, "video", 2)
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, EventLike, e.Type)
	assert.NotZero(t, e.Timestamp)
}
