package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_SubscribeReplaysCurrentSnapshot(t *testing.T) {
	f := NewFeed[int]()
	f.Publish([]int{1, 2, 3})

	ch, cancel := f.Subscribe()
	defer cancel()

	// The current value is already buffered; no publish needed.
	got := <-ch
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestFeed_SubscribeBeforeFirstLoadSeesEmpty(t *testing.T) {
	f := NewFeed[int]()

	ch, cancel := f.Subscribe()
	defer cancel()

	got := <-ch
	assert.Empty(t, got)
}

func TestFeed_SlowSubscriberGetsLatestOnly(t *testing.T) {
	f := NewFeed[int]()
	ch, cancel := f.Subscribe()
	defer cancel()

	<-ch // drain the replayed snapshot

	// Three publishes without a read in between: intermediate values are
	// dropped, only the most recent snapshot is delivered.
	f.Publish([]int{1})
	f.Publish([]int{2})
	f.Publish([]int{3})

	got := <-ch
	assert.Equal(t, []int{3}, got)

	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected extra delivery: %v", v)
		}
	default:
	}
}

func TestFeed_PublishReachesAllSubscribers(t *testing.T) {
	f := NewFeed[string]()

	ch1, cancel1 := f.Subscribe()
	defer cancel1()
	ch2, cancel2 := f.Subscribe()
	defer cancel2()
	<-ch1
	<-ch2

	f.Publish([]string{"a"})
	assert.Equal(t, []string{"a"}, <-ch1)
	assert.Equal(t, []string{"a"}, <-ch2)
}

func TestFeed_CancelClosesChannelAndStopsDelivery(t *testing.T) {
	f := NewFeed[int]()
	ch, cancel := f.Subscribe()
	<-ch

	cancel()
	_, ok := <-ch
	assert.False(t, ok, "channel must be closed after cancel")

	// Publishing after cancel must not panic.
	f.Publish([]int{9})

	// Cancel is idempotent.
	cancel()
}

func TestFeed_LatestReturnsCopy(t *testing.T) {
	f := NewFeed[int]()
	f.Publish([]int{1, 2})

	a := f.Latest()
	a[0] = 99

	b := f.Latest()
	require.Equal(t, []int{1, 2}, b, "mutating a returned snapshot must not affect the feed")
}

func TestFeed_PublishNeverBlocks(t *testing.T) {
	f := NewFeed[int]()
	_, cancel := f.Subscribe() // never read from
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			f.Publish([]int{i})
		}
		close(done)
	}()
	<-done
}
