package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_StopPreventsFurtherRuns(t *testing.T) {
	s := NewScheduler()
	var runs int64
	s.AddJob("count", time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	after := atomic.LoadInt64(&runs)
	assert.GreaterOrEqual(t, after, int64(1))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&runs))
}

func TestScheduler_RunsJobOnStart(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("on-start", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on scheduler start")
	}
}
