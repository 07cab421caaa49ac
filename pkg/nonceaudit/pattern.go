package nonceaudit

import (
	"runtime"
	"sort"
)

// Pattern is a named relation tried before any range search.
type Pattern struct {
	Relation
	Name     string `json:"name" yaml:"name"`
	Priority int    `json:"priority" yaml:"priority"` // lower is tried first
}

// SearchRange is a rectangle of (a, b) values scanned exhaustively.
// Both bounds are inclusive.
type SearchRange struct {
	A    [2]int64
	B    [2]int64
	Name string
}

// Options configures an Auditor.
type Options struct {
	// Workers bounds the number of pairs examined concurrently
	// (0 = GOMAXPROCS).
	Workers int

	// MaxPairs bounds the number of same-key pairs examined (0 = no limit).
	MaxPairs int

	// IncludeCommonPatterns prepends CommonPatterns to Patterns.
	IncludeCommonPatterns bool

	Patterns []Pattern
	Ranges   []SearchRange

	// SkipZeroA skips a = 0 in range searches.
	SkipZeroA bool
}

// DefaultOptions returns the common patterns and a range search that grows
// from small counters to a moderate rectangle.
func DefaultOptions() Options {
	return Options{
		MaxPairs:              100,
		IncludeCommonPatterns: true,
		Ranges:                DefaultRanges(),
		SkipZeroA:             true,
	}
}

// DefaultRanges returns the range search phases used by DefaultOptions.
func DefaultRanges() []SearchRange {
	return []SearchRange{
		{A: [2]int64{1, 1}, B: [2]int64{-100, 100}, Name: "a=1, small b"},
		{A: [2]int64{1, 1}, B: [2]int64{-10000, 10000}, Name: "a=1, larger b"},
		{A: [2]int64{2, 4}, B: [2]int64{-1000, 1000}, Name: "small a, medium b"},
		{A: [2]int64{-5, -1}, B: [2]int64{-1000, 1000}, Name: "negative a, medium b"},
	}
}

// CommonPatterns returns a copy of the built-in patterns. Counters and
// fixed strides come first, then small multipliers.
func CommonPatterns() []Pattern {
	return []Pattern{
		{Relation: Relation{1, 1}, Name: "counter_+1", Priority: 2},
		{Relation: Relation{1, -1}, Name: "counter_-1", Priority: 2},
		{Relation: Relation{1, 2}, Name: "counter_+2", Priority: 3},
		{Relation: Relation{1, -2}, Name: "counter_-2", Priority: 3},
		{Relation: Relation{1, 3}, Name: "counter_+3", Priority: 3},
		{Relation: Relation{1, 4}, Name: "counter_+4", Priority: 3},
		{Relation: Relation{1, 5}, Name: "counter_+5", Priority: 3},
		{Relation: Relation{1, 8}, Name: "step_8", Priority: 4},
		{Relation: Relation{1, 16}, Name: "step_16", Priority: 4},
		{Relation: Relation{1, 32}, Name: "step_32", Priority: 4},
		{Relation: Relation{1, 64}, Name: "step_64", Priority: 4},
		{Relation: Relation{1, 256}, Name: "step_256", Priority: 4},
		{Relation: Relation{1, 1024}, Name: "step_1024", Priority: 4},
		{Relation: Relation{1, 10}, Name: "step_10", Priority: 4},
		{Relation: Relation{1, 100}, Name: "step_100", Priority: 4},
		{Relation: Relation{1, 1000}, Name: "step_1000", Priority: 4},
		{Relation: Relation{1, 12345}, Name: "step_12345", Priority: 4},
		{Relation: Relation{2, 0}, Name: "multiply_2", Priority: 5},
		{Relation: Relation{2, 1}, Name: "multiply_2_+1", Priority: 5},
		{Relation: Relation{3, 0}, Name: "multiply_3", Priority: 5},
		{Relation: Relation{4, 0}, Name: "multiply_4", Priority: 5},
		{Relation: Relation{-1, 0}, Name: "negate", Priority: 6},
	}
}

func (o Options) patterns() []Pattern {
	var out []Pattern
	if o.IncludeCommonPatterns {
		out = append(out, CommonPatterns()...)
	}
	out = append(out, o.Patterns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
