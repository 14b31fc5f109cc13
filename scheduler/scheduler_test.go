// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingAdvancer struct {
	calls atomic.Int32
	ran   chan struct{}
	err   error
}

func (a *countingAdvancer) AdvanceDue(ctx context.Context) (int, int, error) {
	if a.calls.Add(1) == 1 {
		close(a.ran)
	}
	return 1, 0, a.err
}

func TestSchedulerRunsAdvancer(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"advance error is logged", errors.New("store down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := &countingAdvancer{ran: make(chan struct{}), err: tt.err}

			s, err := New(adv, time.Hour)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			s.Start()

			select {
			case <-adv.ran:
			case <-time.After(5 * time.Second):
				t.Fatal("Expected advance job to run immediately")
			}

			if err := s.Shutdown(); err != nil {
				t.Errorf("Shutdown failed: %v", err)
			}
			if n := adv.calls.Load(); n != 1 {
				t.Errorf("Expected 1 run within the first interval, got %d", n)
			}
		})
	}
}

func TestNewRejectsInterval(t *testing.T) {
	if _, err := New(&countingAdvancer{ran: make(chan struct{})}, 0); err == nil {
		t.Error("Expected error for zero interval")
	}
}
