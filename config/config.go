// Package config carries the tunables spec §9 groups into a single
// recognized-options struct, shared by both the raptor and mcraptor search
// packages, plus the cooperative cancellation token spec §5 describes.
package config

import "sync/atomic"

// McCriteria is a bitset of the optional McRAPTOR criteria beyond
// ArrivalTime, which is always implicitly active (spec §4.4).
type McCriteria uint8

const (
	CriterionFare      McCriteria = 1 << iota
	CriterionBoardings
)

// Has reports whether c is included in the set.
func (s McCriteria) Has(c McCriteria) bool {
	return s&c != 0
}

// Config is the recognized-options struct spec §9 names:
// { default_transfer_seconds, max_rounds, enable_target_pruning, criteria }.
type Config struct {
	// DefaultTransferSeconds is the layover used when materializing
	// intra-station transfers at build time (spec §4.2). Kept here too
	// since callers often need it alongside search parameters.
	DefaultTransferSeconds int32
	// MaxRounds is the round cap K (spec §4.3, §4.4). Must be >= 1.
	MaxRounds int
	// EnableTargetPruning substitutes tau-star of any destination stop as
	// an additional upper bound during route traversal (spec §4.3).
	EnableTargetPruning bool
	// Criteria selects which optional McRAPTOR criteria are tracked beyond
	// ArrivalTime.
	Criteria McCriteria
}

// Option mutates a Config; New applies options over sensible defaults.
type Option func(*Config)

// WithMaxRounds sets the round cap K.
func WithMaxRounds(k int) Option {
	return func(c *Config) { c.MaxRounds = k }
}

// WithTargetPruning toggles target pruning.
func WithTargetPruning(enabled bool) Option {
	return func(c *Config) { c.EnableTargetPruning = enabled }
}

// WithCriteria sets the McRAPTOR optional criteria set.
func WithCriteria(criteria McCriteria) Option {
	return func(c *Config) { c.Criteria = criteria }
}

// WithDefaultTransferSeconds sets the default intra-station layover.
func WithDefaultTransferSeconds(seconds int32) Option {
	return func(c *Config) { c.DefaultTransferSeconds = seconds }
}

// New builds a Config with spec-sane defaults (a 4-round cap, target
// pruning on, fare+boardings tracked in McRAPTOR) overridden by opts.
func New(opts ...Option) Config {
	c := Config{
		DefaultTransferSeconds: 120,
		MaxRounds:              4,
		EnableTargetPruning:    true,
		Criteria:               CriterionFare | CriterionBoardings,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CancelToken is the cooperative cancellation mechanism spec §5 describes:
// checked at the start of every round and again once the round's route
// scans are done, never preempting mid-scan.
// The zero value is a token that never cancels.
type CancelToken struct {
	cancelled *atomic.Bool
}

// NewCancelToken returns a fresh, not-yet-cancelled token.
func NewCancelToken() CancelToken {
	return CancelToken{cancelled: &atomic.Bool{}}
}

// Cancel marks the token cancelled. Safe to call from another goroutine;
// the search only observes it at round/route-scan boundaries.
func (t CancelToken) Cancel() {
	if t.cancelled != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether Cancel has been called.
func (t CancelToken) Cancelled() bool {
	return t.cancelled != nil && t.cancelled.Load()
}
