// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/natterhq/natter/internal/social"
)

// Worker periodically publishes scheduled posts whose time has arrived.
// Overlapping firings are skipped via the running flag; the dispatch query
// itself is idempotent, so a concurrent invocation would still publish each
// post exactly once.
type Worker struct {
	Social   *social.Service
	Ticker   *time.Ticker
	StopChan chan bool
	mu       sync.Mutex
	running  bool
	active   bool
}

func NewWorker(svc *social.Service) *Worker {
	return &Worker{
		Social:   svc,
		StopChan: make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		log.Println("Worker: Dispatcher already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.DispatchDue()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	log.Printf("Scheduled post dispatcher started with interval: %v", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		log.Println("Worker: Dispatcher not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	log.Println("Scheduled post dispatcher stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.mu.Lock()
	isActive := w.active
	w.mu.Unlock()

	if isActive {
		w.Stop()
		time.Sleep(100 * time.Millisecond)
	}
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Worker) DispatchDue() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Println("Worker: Dispatch already in progress, skipping...")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	published, err := w.Social.DispatchDue(context.Background(), time.Now())
	if err != nil {
		log.Printf("Worker: Failed to publish due posts: %v", err)
		return
	}
	if published > 0 {
		log.Printf("Worker: Published %d scheduled post(s)", published)
	}
}
