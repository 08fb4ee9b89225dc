package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// ─── Job types ────────────────────────────────────────────────────────────────

var (
	echoCalls atomic.Int32
	failCalls atomic.Int32
)

type echoJob struct {
	Val string `json:"val"`
}

func (echoJob) Name() string { return "echo" }

func (j echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (failJob) Name() string { return "fail" }

func (failJob) Handle() error {
	failCalls.Add(1)
	return errors.New("always fails")
}

func init() {
	// Start workers so jobs actually get processed in tests.
	queue.StartWorkers(context.Background(), 2)

	queue.Register("echo", func() queue.Job { return &echoJob{} })
	queue.Register("fail", func() queue.Job { return &failJob{} })
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch(echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoCalls.Load() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if echoCalls.Load() == before {
		t.Error("job was never processed")
	}
}

func TestFailedJobRetry(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch(failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	// 1 attempt + 1s backoff + slack.
	time.Sleep(2500 * time.Millisecond)

	if len(queue.FailedJobs()) == 0 {
		t.Error("expected at least one failed job")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(echoJob{Val: "c"}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
