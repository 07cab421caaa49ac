package nonceaudit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"filippo.io/edwards25519"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// progressInterval is how often a running audit logs its progress.
const progressInterval = 5 * time.Second

// Auditor runs the multi-phase nonce search over a batch of records:
//
//  0. identical R (plain nonce reuse),
//  1. named patterns in priority order,
//  2. exhaustive search over each configured range.
//
// Pairs are examined independently by a bounded worker pool; each pair
// yields at most one Finding.
type Auditor struct {
	opts     Options
	patterns []Pattern
	logger   zerolog.Logger
}

// Option customises an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Auditor) {
		a.logger = l
	}
}

// New creates an Auditor.
func New(opts Options, options ...Option) *Auditor {
	a := &Auditor{
		opts:     opts,
		patterns: opts.patterns(),
		logger:   zerolog.Nop(),
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// Audit examines every pair of records signed by the same key, up to
// Options.MaxPairs pairs, and reports each pair whose nonces are related.
// A malformed record fails the whole audit with its index.
func (a *Auditor) Audit(ctx context.Context, records []Record) (*Report, error) {
	decs, err := decodeAll(records)
	if err != nil {
		return nil, err
	}

	pairs, truncated := a.pairs(decs)
	report := &Report{
		Signatures:   len(records),
		PairsChecked: len(pairs),
		Truncated:    truncated,
	}
	a.logger.Info().
		Int("signatures", len(records)).
		Int("pairs", len(pairs)).
		Int("patterns", len(a.patterns)).
		Int("ranges", len(a.opts.Ranges)).
		Msg("starting nonce audit")

	var tested atomic.Int64
	stop := a.reportProgress(ctx, &tested)
	defer stop()

	results := make([]*Finding, len(pairs))
	var duplicates atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.workers())
	for k, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := a.examine(gctx, decs[p[0]], decs[p[1]], &tested)
			if errors.Is(err, ErrDegenerate) {
				duplicates.Add(1)
				return nil
			}
			if err != nil {
				return err
			}
			if f != nil {
				f.Pair = p
				results[k] = f
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range results {
		if f == nil {
			continue
		}
		a.logger.Warn().
			Ints("pair", f.Pair[:]).
			Str("pattern", f.Pattern).
			Int64("a", f.Relation.A).
			Int64("b", f.Relation.B).
			Bool("verified", f.Verified).
			Msg("related nonces found")
		report.Findings = append(report.Findings, *f)
	}
	report.Duplicates = int(duplicates.Load())

	a.logger.Info().
		Int("findings", len(report.Findings)).
		Int("duplicates", report.Duplicates).
		Int64("candidates_tested", tested.Load()).
		Msg("nonce audit complete")
	return report, nil
}

// RecoverWithRelation tries a known relation on every same-key pair and
// returns the first pair whose recovered scalar matches its public key.
func (a *Auditor) RecoverWithRelation(ctx context.Context, records []Record, rel Relation) (*Finding, error) {
	decs, err := decodeAll(records)
	if err != nil {
		return nil, err
	}
	pairs, _ := a.pairs(decs)
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d1, d2 := decs[p[0]], decs[p[1]]
		if !relationHolds(d1.R, d2.R, rel) {
			continue
		}
		f, err := a.recover(d1, d2, rel, fmt.Sprintf("known_a%d_b%d", rel.A, rel.B))
		if err != nil || !f.Verified {
			continue
		}
		f.Pair = p
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoRelation, rel)
}

// examine runs the phases on one pair. ErrDegenerate means the two
// signatures are duplicates.
func (a *Auditor) examine(ctx context.Context, d1, d2 *decoded, tested *atomic.Int64) (*Finding, error) {
	if d1.rBytes == d2.rBytes {
		return a.recover(d1, d2, Relation{A: 1}, "same_nonce_reuse")
	}

	for _, p := range a.patterns {
		tested.Add(1)
		if !relationHolds(d1.R, d2.R, p.Relation) {
			continue
		}
		if f, err := a.recover(d1, d2, p.Relation, p.Name); err == nil {
			return f, nil
		}
	}

	for _, r := range a.opts.Ranges {
		rel, ok, err := searchRange(ctx, d1.R, d2.R, r, a.opts.SkipZeroA, tested)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if f, err := a.recover(d1, d2, rel, fmt.Sprintf("range_a%d_b%d", rel.A, rel.B)); err == nil {
			return f, nil
		}
	}
	return nil, nil
}

func (a *Auditor) recover(d1, d2 *decoded, rel Relation, name string) (*Finding, error) {
	x, err := recoverScalar(d1, d2, rel)
	if err != nil {
		return nil, err
	}
	defer x.Set(edwards25519.NewScalar())

	f := &Finding{
		Relation: rel,
		Pattern:  name,
		Verified: new(edwards25519.Point).ScalarBaseMult(x).Equal(d2.pub) == 1,
	}
	copy(f.Scalar[:], x.Bytes())
	return f, nil
}

// pairs lists index pairs (i < j) of records under the same key, stopping
// at MaxPairs.
func (a *Auditor) pairs(decs []*decoded) ([][2]int, bool) {
	var out [][2]int
	for i := 0; i < len(decs); i++ {
		for j := i + 1; j < len(decs); j++ {
			if decs[i].key != decs[j].key {
				continue
			}
			if a.opts.MaxPairs > 0 && len(out) == a.opts.MaxPairs {
				return out, true
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out, false
}

func (a *Auditor) reportProgress(ctx context.Context, tested *atomic.Int64) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				a.logger.Debug().Int64("candidates_tested", tested.Load()).Msg("audit progress")
			}
		}
	}()
	return func() { close(done) }
}

func decodeAll(records []Record) ([]*decoded, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSignatures, len(records))
	}
	decs := make([]*decoded, len(records))
	for i := range records {
		d, err := decode(&records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		decs[i] = d
	}
	return decs, nil
}
