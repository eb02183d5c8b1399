// Package notify delivers batch failure notifications to configured
// endpoints. Sends are asynchronous; callers use Wait before exiting.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/stevedore/stevedore/internal/logging"
)

// Service is the interface all notifiers implement.
type Service interface {
	Send(ctx context.Context, title, message string) error
	Name() string
}

var (
	maxRetries  = 3
	baseBackoff = 100 * time.Millisecond
)

// sleepHook is swapped out in tests to avoid sleeping for real.
var sleepHook = time.Sleep

// MultiNotifier fans a notification out to all registered services.
type MultiNotifier struct {
	services []Service
	mu       sync.Mutex
	wg       sync.WaitGroup
}

func NewMultiNotifier() *MultiNotifier {
	return &MultiNotifier{services: make([]Service, 0)}
}

func (m *MultiNotifier) Add(s Service) {
	if s != nil {
		m.services = append(m.services, s)
	}
}

func (m *MultiNotifier) Len() int {
	return len(m.services)
}

// Send dispatches the notification to every service in the background, with
// per-service retries and exponential backoff.
func (m *MultiNotifier) Send(ctx context.Context, title, message string) {
	for _, s := range m.services {
		m.wg.Add(1)
		go func(svc Service) {
			defer m.wg.Done()
			if err := m.sendWithRetries(ctx, svc, title, message); err != nil {
				logging.Get().Error().Err(err).Str("service", svc.Name()).Msg("all notification retries failed")
			}
		}(s)
	}
}

// Wait blocks until pending sends complete or the context is cancelled.
func (m *MultiNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MultiNotifier) sendWithRetries(ctx context.Context, s Service, title, message string) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := s.Send(ctx, title, message); err != nil {
			lastErr = err
			logging.Get().Warn().Err(err).Str("service", s.Name()).Int("attempt", attempt).Msg("notification attempt failed")
			if attempt < maxRetries {
				slept := make(chan struct{})
				go func() {
					sleepHook(baseBackoff * time.Duration(1<<uint(attempt-1)))
					close(slept)
				}()
				select {
				case <-slept:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			continue
		}
		logging.Get().Debug().Str("service", s.Name()).Msg("notification sent")
		return nil
	}
	return lastErr
}

// postJSON is the shared transport helper for webhook-style providers.
func postJSON(ctx context.Context, url string, data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	return nil
}
