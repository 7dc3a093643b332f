package inmemory

import (
	"testing"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("use_item")
	r.RecordSuccess("use_item")
	r.RecordSuccess("sync")
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.ActionTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 3 {
		t.Fatalf("expected success 3, got %d", s.ActionSuccess)
	}
	if s.ActionConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.ActionConflict)
	}
	if s.ActionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.ActionFailure)
	}
	if s.ByAction["use_item"] != 2 {
		t.Fatalf("expected use_item count 2, got %d", s.ByAction["use_item"])
	}
	if s.ByAction["sync"] != 1 {
		t.Fatalf("expected sync count 1, got %d", s.ByAction["sync"])
	}
}

func TestRecorderSnapshotCopyIsIsolated(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("play")

	s := r.Snapshot()
	s.ByAction["play"] = 99

	if got := r.Snapshot().ByAction["play"]; got != 1 {
		t.Fatalf("expected recorder unaffected by snapshot mutation, got %d", got)
	}
}
