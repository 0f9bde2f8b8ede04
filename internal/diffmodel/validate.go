package diffmodel

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
)

// ErrMalformed is wrapped by every invariant violation reported by this package.
var ErrMalformed = errors.New("malformed diff model")

// Validate checks the shape invariants of b's kind.
func (b Block) Validate() error {
	if b.Base.Offset < 0 || b.Changed.Offset < 0 {
		return fmt.Errorf("%w: %s block has a negative offset", ErrMalformed, b.Kind)
	}
	nb, nc := len(b.Base.Lines), len(b.Changed.Lines)
	switch b.Kind {
	case Unmodified:
		if nb != nc {
			return fmt.Errorf("%w: unmodified requires equal line counts, got %d and %d", ErrMalformed, nb, nc)
		}
	case Added:
		if nb != 0 || nc == 0 {
			return fmt.Errorf("%w: added requires no base lines and at least one changed line", ErrMalformed)
		}
	case Removed:
		if nc != 0 || nb == 0 {
			return fmt.Errorf("%w: removed requires no changed lines and at least one base line", ErrMalformed)
		}
	case Modified:
		if nb == 0 || nc == 0 {
			return fmt.Errorf("%w: modified requires both sides non-empty", ErrMalformed)
		}
	case Skipped:
		if nb != 0 || nc != 0 {
			return fmt.Errorf("%w: skipped carries no lines", ErrMalformed)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrMalformed, b.Kind)
	}
	return nil
}

// Validate checks every block of f and the contiguity of offsets between consecutive blocks. It returns the first violation.
//
// Contiguity is tracked per side: a block carrying lines on a side must start where the previous block carrying lines on that side ended. A Skipped
// block, or a side whose lines have no offset, resets the expectation.
func (f File) Validate() error {
	var nextBase, nextChanged int // 0 means "no expectation"
	for i, b := range f.Blocks {
		if err := b.Validate(); err != nil {
			if glog.V(3) {
				glog.Infof("diffmodel: %s: rejected block[%d]: %s", f.Name, i, spew.Sdump(b))
			}
			return fmt.Errorf("%s: block[%d]: %w", f.Name, i, err)
		}
		if b.Kind == Skipped {
			nextBase, nextChanged = 0, 0
			continue
		}
		var err error
		if nextBase, err = advance(nextBase, b.Base); err != nil {
			return fmt.Errorf("%s: block[%d]: base %w", f.Name, i, err)
		}
		if nextChanged, err = advance(nextChanged, b.Changed); err != nil {
			return fmt.Errorf("%s: block[%d]: changed %w", f.Name, i, err)
		}
	}
	return nil
}

// advance checks s against the expected next offset and returns the new expectation.
func advance(next int, s Side) (int, error) {
	if len(s.Lines) == 0 {
		return next, nil
	}
	if s.Offset == 0 {
		return 0, nil
	}
	if next != 0 && s.Offset != next {
		return 0, fmt.Errorf("%w: offset %d does not continue previous block (expected %d)", ErrMalformed, s.Offset, next)
	}
	return s.End(), nil
}
