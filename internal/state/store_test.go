package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/lamplight/api"
	"github.com/five82/lamplight/recordset"
)

func buildSet(t *testing.T, status int, body string) *recordset.RecordSet {
	t.Helper()
	rs, err := recordset.NewFactory(nil).Build(
		api.NewRequestContext("workarea", "all", nil),
		api.NewEnvelope(status, nil, []byte(body)),
		"",
	)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return rs
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(buildSet(t, 200, `{"data":[{"id":1,"text":"a"},{"id":2,"text":"b"}]}`), nil)

	snap := s.Snapshot()
	if !snap.HasData() {
		t.Fatalf("HasData = false, want true")
	}
	if len(snap.Items) != 2 || snap.Items[0].ID() != 1 {
		t.Fatalf("snapshot items = %#v, want 2 records", snap.Items)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.Fetches != 1 {
		t.Fatalf("Fetches = %d, want 1", snap.Fetches)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0] = nil
	snap2 := s.Snapshot()
	if snap2.Items[0] == nil {
		t.Fatalf("Snapshot should clone items")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(buildSet(t, 200, `{"data":[{"id":1}]}`), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.Records != prev.Records {
		t.Fatalf("records changed on error")
	}
	if len(snap.Items) != 1 || snap.Items[0].ID() != 1 {
		t.Fatalf("items changed on error: got %#v", snap.Items)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ServerErrorIsNotAFailure(t *testing.T) {
	var s Store

	s.Update(buildSet(t, 401, `{"error":1001,"msg":"bad key"}`), nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	code, msg, ok := snap.ServerError()
	if !ok || code != 1001 || msg != "bad key" {
		t.Fatalf("ServerError = %d %q %v, want 1001 bad key true", code, msg, ok)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("Items = %d, want 0", len(snap.Items))
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	// Initially zero failures
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}
	if snap.HasData() {
		t.Fatal("HasData() = true before any fetch")
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Update(buildSet(t, 200, `{}`), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
	if snap.Fetches != 3 {
		t.Fatalf("Fetches = %d, want 3", snap.Fetches)
	}
}
