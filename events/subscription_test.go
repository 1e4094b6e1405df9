package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_EmitReachesAllSubscribers(t *testing.T) {
	sm := NewSubscriptionManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	subscriberCount := 5
	notificationReceived := make([]bool, subscriberCount)

	for i := 0; i < subscriberCount; i++ {
		sub := sm.Subscribe()
		idx := i

		wg.Add(1)
		go func(sub ISubscription, idx int) {
			defer wg.Done()
			select {
			case <-sub.Chan():
				notificationReceived[idx] = true
			case <-time.After(1 * time.Second):
				// Timeout waiting for notification
			}
		}(sub, idx)
	}

	sm.Emit(ctx)
	wg.Wait()

	for i, received := range notificationReceived {
		require.Truef(t, received, "Subscriber %d did not receive notification", i)
	}
}

func TestSubscriptionManager_CancelRemovesSubscription(t *testing.T) {
	sm := NewSubscriptionManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := sm.Subscribe()
	sub.Cancel()

	sm.mu.RLock()
	count := len(sm.subscribers)
	sm.mu.RUnlock()
	require.Equal(t, 0, count, "Subscription was not removed")

	// Repeated cancel and further emits must not panic
	sub.Cancel()
	sm.Emit(ctx)
}

func TestSubscriptionManager_MultipleEmitsCollapse(t *testing.T) {
	sm := NewSubscriptionManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := sm.Subscribe()
	defer sub.Cancel()

	sm.Emit(ctx)
	sm.Emit(ctx)
	sm.Emit(ctx)

	// The subscriber channel has capacity 1, pending emits collapse
	<-sub.Chan()

	select {
	case <-sub.Chan():
		t.Fatal("expected collapsed notifications, got a second one")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscription_Watch(t *testing.T) {
	sm := NewSubscriptionManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	sub := sm.Subscribe().Watch(ctx, func() {
		atomic.AddInt32(&calls, 1)
	}, true)
	defer sub.Cancel()

	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "callNow callback not invoked")

	sm.Emit(ctx)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 10*time.Millisecond)
}
