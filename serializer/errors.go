package serializer

import (
	"errors"

	"github.com/indigo-web/wire/internal/workspace"
)

// ErrExpectContinue is returned from Prepare once the header of an
// Expect: 100-continue message has been fully consumed — the caller
// must receive the interim 100-Continue response before resuming.
var ErrExpectContinue = errors.New("wire: awaiting 100-continue acknowledgement")

// ErrNeedData is returned from Prepare on an uncompressed stream-style
// body when the ring is empty and the producer has not called
// Stream.Close yet — the caller must push more bytes through the Stream
// handle first. A compressed stream-style body does not return it.
var ErrNeedData = errors.New("wire: stream has no data buffered")

// ErrCloseConnection is a signal sentinel, not raised by anything in
// this package: it mirrors the teacher's http.ErrCloseConnection /
// status.ErrCloseConnection shape so a caller computing its own
// keep-alive decision (a transport-layer concern this module has no
// opinion on) can plumb that decision back through the same
// errors.Is-comparable channel as the module's own operational errors,
// instead of inventing a parallel one.
var ErrCloseConnection = errors.New("wire: closing the connection after this message")

// ErrWorkspaceTooSmall is the module's length error: the workspace
// cannot accommodate the framing a start_* call requires. Re-exported
// from internal/workspace so callers outside this module's tree can
// still compare against it with errors.Is.
var ErrWorkspaceTooSmall = workspace.ErrTooSmall

// LogicError marks a precondition violation: calling Prepare/Consume
// after IsDone, Stream.Commit(0) in chunked mode, or Stream.Close when
// the body isn't open. These are programming errors, not recoverable
// conditions, so they are raised by panicking rather than returned.
type LogicError struct {
	Msg string
}

func (e *LogicError) Error() string {
	return "wire: logic error: " + e.Msg
}
