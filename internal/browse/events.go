package browse

import (
	"context"
	"errors"

	"github.com/mmcdole/reel/internal/domain"
)

// Event is anything that can move the state forward
type Event interface {
	isEvent()
}

// Mounted is sent once when the view first appears
type Mounted struct{}

// NextPage advances one page, if there is one
type NextPage struct{}

// PrevPage goes back one page, if there is one
type PrevPage struct{}

// GoToPage jumps to a page, clamped to the valid range
type GoToPage struct {
	Page int
}

// SubmitSearch commits free-text search input
type SubmitSearch struct {
	Text string
}

// ClearSearch leaves search mode and returns to discover
type ClearSearch struct{}

// ChangeSort reorders the loaded list
type ChangeSort struct {
	Key SortKey
}

// Refresh refetches what is on screen
type Refresh struct{}

// FetchResult reports how a FetchCommand finished
type FetchResult struct {
	Seq     uint64
	Request domain.PageRequest
	Page    *domain.ResultPage // nil unless Err is nil
	Err     error
}

func (Mounted) isEvent()      {}
func (NextPage) isEvent()     {}
func (PrevPage) isEvent()     {}
func (GoToPage) isEvent()     {}
func (SubmitSearch) isEvent() {}
func (ClearSearch) isEvent()  {}
func (ChangeSort) isEvent()   {}
func (Refresh) isEvent()      {}
func (FetchResult) isEvent()  {}

// Outcome classifies a finished fetch
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeCancelled
)

// String returns the outcome name used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome reports whether the fetch succeeded, failed, or was cancelled
func (r FetchResult) Outcome() Outcome {
	switch {
	case r.Err == nil:
		return OutcomeSuccess
	case errors.Is(r.Err, context.Canceled):
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}

// FetchCommand asks the caller to fetch one page and report back with a
// FetchResult carrying the same Seq
type FetchCommand struct {
	Seq     uint64
	Request domain.PageRequest
}

// Result builds the FetchResult event for this command
func (c FetchCommand) Result(page *domain.ResultPage, err error) FetchResult {
	return FetchResult{
		Seq:     c.Seq,
		Request: c.Request,
		Page:    page,
		Err:     err,
	}
}
