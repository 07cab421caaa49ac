// Package errcode defines the stable integer codes returned across the
// foreign-call boundary and maps Go errors onto them.
package errcode

import (
	"errors"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// Code is a boundary error code. Values are part of the external wire
// schema and must never be renumbered.
type Code int32

const (
	NoError                      Code = 0
	InvalidContextLength         Code = 1
	InvalidPublicKey             Code = 2
	InvalidSignature             Code = 3
	PointDecompressionError      Code = 4
	InvalidRangeProof            Code = 5
	GeneratorSizeMismatch        Code = 6
	InternalError                Code = 7
	InvalidInput                 Code = 8
	SignatureVerificationFailure Code = 9
)

var names = map[Code]string{
	NoError:                      "NO_ERROR",
	InvalidContextLength:         "INVALID_CONTEXT_LENGTH",
	InvalidPublicKey:             "INVALID_PUBLIC_KEY",
	InvalidSignature:             "INVALID_SIGNATURE",
	PointDecompressionError:      "POINT_DECOMPRESSION_ERROR",
	InvalidRangeProof:            "INVALID_RANGE_PROOF",
	GeneratorSizeMismatch:        "GENERATOR_SIZE_MISMATCH",
	InternalError:                "INTERNAL_ERROR",
	InvalidInput:                 "INVALID_INPUT",
	SignatureVerificationFailure: "SIGNATURE_VERIFICATION_FAILURE",
}

func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Int returns the code as a C int.
func (c Code) Int() int { return int(c) }

// ErrInvalidInput marks caller-side input defects that have no more
// specific code: null pointers, oversized or wrongly sized buffers.
var ErrInvalidInput = errors.New("invalid input")

// mapping is checked in order; more specific sentinels come first.
var mapping = []struct {
	target error
	code   Code
}{
	{stdsig.ErrInvalidContextLength, InvalidContextLength},
	{rangeproof.ErrInvalidContextLength, InvalidContextLength},
	{stdsig.ErrInvalidPublicKey, InvalidPublicKey},
	{stdsig.ErrInvalidSignature, InvalidSignature},
	{stdsig.ErrPointDecompression, PointDecompressionError},
	{rangeproof.ErrInvalidCommitment, PointDecompressionError},
	{stdsig.ErrVerificationFailed, SignatureVerificationFailure},
	{generators.ErrGeneratorSizeMismatch, GeneratorSizeMismatch},
	{rangeproof.ErrInvalidBitSize, GeneratorSizeMismatch},
	{rangeproof.ErrInvalidProof, InvalidRangeProof},
	{rangeproof.ErrVerificationFailed, InvalidRangeProof},
	{rangeproof.ErrValueOutOfRange, InvalidInput},
	{stdsig.ErrInvalidLength, InvalidInput},
	{ErrInvalidInput, InvalidInput},
}

// FromError returns the code for err. nil maps to NoError and any error
// not recognised maps to InternalError.
func FromError(err error) Code {
	if err == nil {
		return NoError
	}
	for _, m := range mapping {
		if errors.Is(err, m.target) {
			return m.code
		}
	}
	return InternalError
}
