// Package generators derives the public group parameters used by the
// commitment and range-proof engine.
//
// All points are computed from fixed public seeds with nothing-up-my-sleeve
// hashing; none of them depends on a private key. The default set is
// computed once per process and shared read-only by every caller.
package generators

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// DefaultCapacity is the bit-width supported by the default generator set.
const DefaultCapacity = 64

var (
	// ErrGeneratorSizeMismatch is returned when a caller asks for more
	// generators than the set holds.
	ErrGeneratorSizeMismatch = errors.New("generators: generator vector length does not match bit-width")
	// ErrInvalidCapacity is returned for a non-positive capacity.
	ErrInvalidCapacity = errors.New("generators: capacity must be positive")
)

// PedersenGens are the two independent points of a Pedersen commitment.
// B commits the value and BBlinding the blinding factor.
type PedersenGens struct {
	B         ristretto.Point
	BBlinding ristretto.Point
}

// NewPedersenGens returns B = the ristretto255 base point and
// BBlinding = the point hashed from SHA3-512(B).
func NewPedersenGens() *PedersenGens {
	g := &PedersenGens{}
	g.B.SetBase()
	digest := sha3.Sum512(g.B.Bytes())
	g.BBlinding = fromUniformBytes(&digest)
	return g
}

// Commit returns value·B + blinding·BBlinding.
func (g *PedersenGens) Commit(value, blinding *ristretto.Scalar) *ristretto.Point {
	var vB, rH ristretto.Point
	vB.ScalarMult(&g.B, value)
	rH.ScalarMult(&g.BBlinding, blinding)
	return new(ristretto.Point).Add(&vB, &rH)
}

// BulletproofGens holds the G and H vectors of a single-party range proof.
// The slices must be treated as read-only.
type BulletproofGens struct {
	Capacity int
	G        []ristretto.Point
	H        []ristretto.Point
}

// NewBulletproofGens derives capacity generators for each vector from the
// SHAKE256 chains labelled "G" and "H" for party 0.
func NewBulletproofGens(capacity int) (*BulletproofGens, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	g := &BulletproofGens{
		Capacity: capacity,
		G:        make([]ristretto.Point, capacity),
		H:        make([]ristretto.Point, capacity),
	}
	gChain := newChain(partyLabel('G', 0))
	hChain := newChain(partyLabel('H', 0))
	for i := 0; i < capacity; i++ {
		g.G[i] = gChain.next()
		g.H[i] = hChain.next()
	}
	return g, nil
}

// Share returns the first n generators of each vector.
func (g *BulletproofGens) Share(n int) ([]ristretto.Point, []ristretto.Point, error) {
	if n <= 0 || n > g.Capacity {
		return nil, nil, fmt.Errorf("%w: need %d, have %d", ErrGeneratorSizeMismatch, n, g.Capacity)
	}
	return g.G[:n], g.H[:n], nil
}

// Set bundles the parameters shared by commitments and range proofs.
type Set struct {
	Pedersen    *PedersenGens
	Bulletproof *BulletproofGens
}

// NewSet builds a fresh parameter set with the given bulletproof capacity.
func NewSet(capacity int) (*Set, error) {
	bp, err := NewBulletproofGens(capacity)
	if err != nil {
		return nil, err
	}
	return &Set{Pedersen: NewPedersenGens(), Bulletproof: bp}, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the process-wide parameter set with DefaultCapacity
// generators. The first caller computes it; every caller, including ones
// racing the first, observes the same instance.
func Default() *Set {
	defaultOnce.Do(func() {
		set, err := NewSet(DefaultCapacity)
		if err != nil {
			panic(err)
		}
		defaultSet = set
	})
	return defaultSet
}
