package paginator

import (
	"errors"
	"fmt"
)

var (
	// ErrPaginator is the base error matched by every paginator failure.
	ErrPaginator = errors.New("paginator")
	// ErrNotFound reports that no paginator is registered for a chat message.
	ErrNotFound = fmt.Errorf("%w: not found", ErrPaginator)
	// ErrAlreadyBound is returned when a paginator is started or attached twice.
	ErrAlreadyBound = fmt.Errorf("%w: already bound to a message", ErrPaginator)
	// ErrNotBound is returned when navigating a paginator that was never sent.
	ErrNotBound = fmt.Errorf("%w: not bound to a message", ErrPaginator)
	// ErrInvalidConfig reports invalid construction options.
	ErrInvalidConfig = fmt.Errorf("%w: invalid config", ErrPaginator)
	// ErrInvalidTemplate reports a malformed template or an unknown placeholder.
	ErrInvalidTemplate = fmt.Errorf("%w: invalid template", ErrPaginator)
	// ErrCallbackData reports malformed or oversized callback data.
	ErrCallbackData = fmt.Errorf("%w: invalid callback data", ErrPaginator)
)

// NotFoundError carries the lookup key of a missing paginator.
type NotFoundError struct {
	ChatID    int64
	MessageID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("paginator with chat_id=%d and message_id=%d not found", e.ChatID, e.MessageID)
}

// Unwrap makes errors.Is(err, ErrNotFound) and errors.Is(err, ErrPaginator) hold.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Code is picked up by the router summary log as err_code.
func (e *NotFoundError) Code() string { return "paginator_not_found" }
