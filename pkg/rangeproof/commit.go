package rangeproof

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
)

// CommitmentLength is the size of a compressed commitment.
const CommitmentLength = 32

// Commitment is a compressed Pedersen commitment v·B + γ·B̃.
type Commitment [CommitmentLength]byte

// Commit commits to value under blinding with the default generators.
func Commit(value uint64, blinding *ristretto.Scalar) Commitment {
	return CommitWith(generators.Default().Pedersen, value, blinding)
}

// CommitWith commits to value under blinding with the given generators.
func CommitWith(pc *generators.PedersenGens, value uint64, blinding *ristretto.Scalar) Commitment {
	v := scalarFromUint64(value)
	return Commitment(compress(pc.Commit(&v, blinding)))
}

// CommitmentFromBytes copies b into a Commitment after checking that it
// decodes to a group element.
func CommitmentFromBytes(b []byte) (Commitment, error) {
	var c Commitment
	if len(b) != CommitmentLength {
		return c, fmt.Errorf("%w: length %d", ErrInvalidCommitment, len(b))
	}
	copy(c[:], b)
	if _, err := c.Point(); err != nil {
		return Commitment{}, err
	}
	return c, nil
}

// Point decompresses the commitment.
func (c Commitment) Point() (ristretto.Point, error) {
	raw := [32]byte(c)
	p, ok := decompress(&raw)
	if !ok {
		return p, ErrInvalidCommitment
	}
	return p, nil
}

// BlindingFromBytes reduces a 32-byte little-endian blinding factor modulo
// the group order. All 256 bits take part in the reduction.
func BlindingFromBytes(b *[32]byte) *ristretto.Scalar {
	var wide [64]byte
	copy(wide[:], b[:])
	s := new(ristretto.Scalar).SetReduced(&wide)
	clear(wide[:])
	return s
}
