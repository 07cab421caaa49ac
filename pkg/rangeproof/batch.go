package rangeproof

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one proof to check in VerifyBatch.
type BatchItem struct {
	Proof      *Proof
	Commitment Commitment
	Context    []byte
}

// VerifyBatch verifies items concurrently with at most GOMAXPROCS workers.
// It returns the first failure, annotated with the item index, or the
// context error if ctx is cancelled first.
func VerifyBatch(ctx context.Context, items []BatchItem) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range items {
		item := &items[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if item.Proof == nil {
				return fmt.Errorf("item %d: %w", i, ErrInvalidProof)
			}
			if err := VerifySingle(item.Proof, item.Commitment, item.Context); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
