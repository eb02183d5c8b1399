package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCountersFeedSnapshot(t *testing.T) {
	before := GetSnapshot()

	IncBatch(false)
	IncBatch(true)
	IncSucceeded("stop")
	IncAlreadySatisfied("stop")
	IncFailed("rm")
	SetLastBatch(time.Unix(1700000000, 0))

	after := GetSnapshot()
	if after.Batches != before.Batches+2 {
		t.Errorf("batches = %d, want %d", after.Batches, before.Batches+2)
	}
	if after.BatchesFailed != before.BatchesFailed+1 {
		t.Errorf("batches_failed = %d, want %d", after.BatchesFailed, before.BatchesFailed+1)
	}
	if after.TargetsSucceeded != before.TargetsSucceeded+1 {
		t.Errorf("targets_succeeded = %d", after.TargetsSucceeded)
	}
	if after.TargetsSatisfied != before.TargetsSatisfied+1 {
		t.Errorf("targets_already_satisfied = %d", after.TargetsSatisfied)
	}
	if after.TargetsFailed != before.TargetsFailed+1 {
		t.Errorf("targets_failed = %d", after.TargetsFailed)
	}
	if after.LastBatch != 1700000000 {
		t.Errorf("last_batch = %d", after.LastBatch)
	}
}

func TestJSONHandler(t *testing.T) {
	srv := httptest.NewServer(JSONHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var snap StatsSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.LastBatchHuman == "" {
		t.Fatal("snapshot missing human-readable timestamp")
	}
}

func TestPromHandlerServes(t *testing.T) {
	srv := httptest.NewServer(PromHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
