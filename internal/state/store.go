package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/lamplight/record"
	"github.com/five82/lamplight/recordset"
)

// Snapshot is the latest fetch result available to the browser.
type Snapshot struct {
	Records *recordset.RecordSet
	// Items holds the records in server order. Callers must not modify
	// the records themselves.
	Items               []record.Record
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
	Fetches             int
}

// HasData reports whether at least one fetch has completed.
func (s Snapshot) HasData() bool {
	return s.Records != nil
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// ServerError returns the API-reported error of the last result, if any.
func (s Snapshot) ServerError() (code int, msg string, ok bool) {
	if s.Records == nil || !s.Records.HasErrors() {
		return 0, "", false
	}
	return s.Records.ErrorCode(), s.Records.ErrorMessage(), true
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a fetch result. When err is non-nil the previous records are
// kept and the error is recorded for visibility. A RecordSet with server-side
// errors is a completed fetch, not a failure.
func (s *Store) Update(rs *recordset.RecordSet, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Fetches++
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Records = rs
	s.snapshot.Items = nil
	if rs != nil {
		s.snapshot.Items = rs.Records()
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if len(s.snapshot.Items) > 0 {
		snap.Items = append([]record.Record(nil), s.snapshot.Items...)
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
