package app

import (
	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/store"
)

// snapshotMsg carries the result of a fetch started off the event loop.
type snapshotMsg struct {
	records []appointment.Record
	err     error
}

// statusResultMsg carries the source's answer to a status change.
type statusResultMsg struct {
	record appointment.Record
	err    error
}

// searchSettledMsg is posted by the debouncer once typing pauses.
type searchSettledMsg struct {
	query string
}

// cacheEventMsg wraps a change notification from the local cache.
type cacheEventMsg struct {
	event store.Event
}

type cacheClosedMsg struct{}
