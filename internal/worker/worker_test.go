// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"testing"
	"time"

	"github.com/natterhq/natter/internal/social"
)

func TestWorkerLifecycle(t *testing.T) {
	w := NewWorker(social.NewService(nil))

	if w.IsActive() {
		t.Fatalf("worker should start inactive")
	}

	w.Start(time.Hour)
	if !w.IsActive() {
		t.Fatalf("worker should be active after Start")
	}

	// Second start is a no-op, not a second goroutine.
	w.Start(time.Hour)
	if !w.IsActive() {
		t.Fatalf("worker should stay active")
	}

	w.Stop()
	deadline := time.After(time.Second)
	for w.IsActive() {
		select {
		case <-deadline:
			t.Fatalf("worker still active after Stop")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWorkerRestart(t *testing.T) {
	w := NewWorker(social.NewService(nil))

	w.Start(time.Hour)
	w.Restart(time.Minute)
	if !w.IsActive() {
		t.Fatalf("worker should be active after Restart")
	}
	w.Stop()
}
