// Package syncstore keeps a client-side snapshot of one REST collection fresh
// and applies optimistic patches after mutations.
//
// A Store[T] is the single owner of the snapshot for its resource type. Views
// share it: every view calls Start and later stops the returned Handle; the
// first Start creates the sync state and begins polling, the last Stop
// cancels the schedule and discards the state.
//
// # Polling
//
// Start fetches immediately, then on every tick of the interval (30s by
// default). RefreshNow triggers an out-of-band fetch. At most one fetch per
// store is in flight; concurrent requests join it. A failed fetch keeps the
// previous snapshot and records the error in State().LastError; the schedule
// keeps running.
//
// # Mutations
//
// Submit performs one create/update/delete through the ResourceClient. Only
// one submission per (id, operation) may be pending; a second one fails with
// a *domain.DuplicateInFlightError. On success the snapshot is patched at
// once. A fetch that was in flight while the patch landed has the patch
// replayed over its result, so the optimistic view holds until the next poll
// cycle reconciles with the server. On failure the snapshot is untouched and
// the error is returned.
//
// # Teardown
//
// Stopping the last handle cancels in-flight fetches and bumps the store
// epoch. Results from an older epoch, fetch or mutation, are dropped.
package syncstore
