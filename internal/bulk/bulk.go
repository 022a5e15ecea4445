// Package bulk holds the partial-failure result used by every batch operation.
package bulk

import (
	"errors"
	"fmt"
	"strings"
)

type Failure[T any] struct {
	Item T
	Err  error
}

// Result records the outcome of a batch where every item is attempted
// independently.
type Result[T any] struct {
	Succeeded []T
	Failed    []Failure[T]
}

func (r *Result[T]) Ok(item T) {
	r.Succeeded = append(r.Succeeded, item)
}

func (r *Result[T]) Fail(item T, err error) {
	r.Failed = append(r.Failed, Failure[T]{Item: item, Err: err})
}

func (r *Result[T]) Total() int { return len(r.Succeeded) + len(r.Failed) }

func (r *Result[T]) HasFailures() bool { return len(r.Failed) > 0 }

// Err joins the per-item errors, or returns nil when everything succeeded.
func (r *Result[T]) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("%v: %w", f.Item, f.Err))
	}
	return errors.Join(errs...)
}

// Summary renders the tally, e.g. "3 of 5 succeeded, 2 failed".
func (r *Result[T]) Summary() string {
	return fmt.Sprintf("%d of %d succeeded, %d failed", len(r.Succeeded), r.Total(), len(r.Failed))
}

// SplitLines turns a newline separated batch input into trimmed, non-empty
// entries. Duplicates are kept so the caller can report them.
func SplitLines(input string) []string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
