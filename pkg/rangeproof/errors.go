package rangeproof

import (
	"errors"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
)

var (
	// ErrGeneratorSizeMismatch aliases the generator store error so callers
	// of this package need not import generators to classify it.
	ErrGeneratorSizeMismatch = generators.ErrGeneratorSizeMismatch

	ErrInvalidBitSize       = errors.New("rangeproof: bit size must be 8, 16, 32 or 64")
	ErrValueOutOfRange      = errors.New("rangeproof: value does not fit in the bit size")
	ErrInvalidProof         = errors.New("rangeproof: malformed proof encoding")
	ErrInvalidCommitment    = errors.New("rangeproof: commitment is not a valid point")
	ErrVerificationFailed   = errors.New("rangeproof: proof verification failed")
	ErrInvalidContextLength = errors.New("rangeproof: context exceeds maximum length")
)
