package model

import "github.com/m-mizutani/goerr/v2"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MinPageLimit     = 1
)

// PagePolicy defines how a caller supplied limit/offset pair is bounded before
// it reaches the message listing.
type PagePolicy struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPagePolicy returns the policy used when nothing is configured
func DefaultPagePolicy() PagePolicy {
	return PagePolicy{
		DefaultLimit: DefaultPageLimit,
		MaxLimit:     MaxPageLimit,
	}
}

// Validate checks MinPageLimit <= DefaultLimit <= MaxLimit <= MaxPageLimit
func (p PagePolicy) Validate() error {
	if p.MaxLimit < MinPageLimit || p.MaxLimit > MaxPageLimit {
		return goerr.Wrap(ErrInvalidPagePolicy, "max limit out of range",
			goerr.V(LimitKey, p.MaxLimit))
	}
	if p.DefaultLimit < MinPageLimit || p.DefaultLimit > p.MaxLimit {
		return goerr.Wrap(ErrInvalidPagePolicy, "default limit out of range",
			goerr.V(LimitKey, p.DefaultLimit),
			goerr.V("max_limit", p.MaxLimit))
	}
	return nil
}

// Clamp bounds limit to [MinPageLimit, MaxLimit] and offset to >= 0.
// A nil limit falls back to DefaultLimit.
func (p PagePolicy) Clamp(limit *int, offset int) (int, int) {
	l := p.DefaultLimit
	if limit != nil {
		l = *limit
	}
	l = max(MinPageLimit, min(l, p.MaxLimit))
	return l, max(offset, 0)
}

// PageWindow returns the [start, end) bounds of a page within total items
func PageWindow(total, limit, offset int) (int, int) {
	if offset >= total || limit <= 0 {
		return total, total
	}
	start := max(offset, 0)
	end := min(start+limit, total)
	return start, end
}
