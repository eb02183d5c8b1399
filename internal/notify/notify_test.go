package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recordingService struct {
	mu       sync.Mutex
	calls    int
	failures int // fail this many calls before succeeding
}

func (r *recordingService) Name() string { return "recording" }

func (r *recordingService) Send(_ context.Context, _, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failures {
		return errors.New("transient failure")
	}
	return nil
}

func TestSendRetriesUntilSuccess(t *testing.T) {
	old := sleepHook
	sleepHook = func(time.Duration) {}
	defer func() { sleepHook = old }()

	svc := &recordingService{failures: 2}
	m := NewMultiNotifier()
	m.Add(svc)

	m.Send(context.Background(), "batch failed", "details")
	if err := m.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if svc.calls != 3 {
		t.Fatalf("calls = %d, want 3", svc.calls)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	m := NewMultiNotifier()
	m.wg.Add(1) // never released

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := m.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	m.wg.Done()
}

func TestAddIgnoresNil(t *testing.T) {
	m := NewMultiNotifier()
	m.Add(nil)
	if m.Len() != 0 {
		t.Fatalf("len = %d, want 0", m.Len())
	}
}

func TestWebhookPostsJSON(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	w := &Webhook{URL: srv.URL}
	if err := w.Send(context.Background(), "title", "message"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Title != "title" || got.Message != "message" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	w := &Webhook{URL: srv.URL}
	if err := w.Send(context.Background(), "t", "m"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
