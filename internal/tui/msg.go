package tui

import "time"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksChanged is sent after a store mutation has settled.
type MsgTasksChanged struct {
	Submitted bool // The form was submitted and should be cleared
}

func (MsgTasksChanged) sealed() {}

// MsgNotice carries a user-facing message from the task store.
type MsgNotice struct {
	Text string
}

func (MsgNotice) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgTick is sent periodically so overdue flags follow the clock.
type MsgTick struct {
	Time time.Time
}

func (MsgTick) sealed() {}

// MsgClearNotice is sent to clear the notice line.
type MsgClearNotice struct {
	Seq int // Only clears the notice with this sequence number
}

func (MsgClearNotice) sealed() {}
