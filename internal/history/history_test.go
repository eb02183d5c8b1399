package history

import (
	"testing"
	"time"
)

func record(id string) BatchRecord {
	return BatchRecord{
		BatchID:   id,
		Operation: "stop",
		Succeeded: 2,
		Duration:  time.Second,
		Timestamp: time.Now(),
	}
}

func TestRecordAndAll(t *testing.T) {
	t.Setenv("STEVEDORE_STATE_DIR", t.TempDir())

	if err := Record(record("b1"), 10); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := Record(record("b2"), 10); err != nil {
		t.Fatalf("record: %v", err)
	}

	all, err := All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 || all[0].BatchID != "b1" || all[1].BatchID != "b2" {
		t.Fatalf("unexpected records: %+v", all)
	}
}

func TestRecordEnforcesLimit(t *testing.T) {
	t.Setenv("STEVEDORE_STATE_DIR", t.TempDir())

	for i := 0; i < 5; i++ {
		if err := Record(record(string(rune('a'+i))), 3); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	all, err := All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].BatchID != "c" || all[2].BatchID != "e" {
		t.Fatalf("oldest entries not dropped: %+v", all)
	}
}

func TestAllOnEmptyStateDir(t *testing.T) {
	t.Setenv("STEVEDORE_STATE_DIR", t.TempDir())

	all, err := All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no records, got %+v", all)
	}
}
