package errors

import "fmt"

var (
	ErrNotAuthenticated  = fmt.Errorf("not authenticated")
	ErrAuthExpired       = fmt.Errorf("authentication expired")
	ErrSessionExpired    = fmt.Errorf("session expired")
	ErrUnreachable       = fmt.Errorf("collaborator unreachable")
	ErrInvalidTransition = fmt.Errorf("invalid swap transition")
	ErrNotPermitted      = fmt.Errorf("action not permitted for this party")
	ErrChannelClosed     = fmt.Errorf("channel closed")
	ErrTokenMissing      = fmt.Errorf("no persisted token")
	ErrSwapUnknown       = fmt.Errorf("unknown swap request")
	ErrWorkerPanic       = fmt.Errorf("worker panic")
)
