// Package state shares the latest fetch result between the background poller
// and the record browser.
//
// # Overview
//
// The poller writes with Store.Update after every fetch; the browser reads
// with Store.Snapshot on every tick. The Store is guarded by a RWMutex and
// Snapshot returns a copy, so the browser can hold a snapshot while the next
// fetch lands.
//
//	Poller                          Browser
//	client.Fetch()                  store.Snapshot()
//	store.Update(rs, err) --mutex-> render table
//
// # Failure Tracking
//
// A network failure keeps the previous records and increments
// ConsecutiveFailures. Two or more consecutive failures mark the snapshot
// offline. A RecordSet whose HasErrors is true is a completed fetch: the
// server answered, so the failure counter resets and ServerError reports the
// code and message.
//
// # Copy Semantics
//
// RecordSets are read-only once built, so the pointer is shared. The Items
// slice is copied; the records in it must be treated as read-only.
package state
