package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/rangeproof"
	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

func TestCodeValuesAreStable(t *testing.T) {
	want := map[Code]int{
		NoError:                      0,
		InvalidContextLength:         1,
		InvalidPublicKey:             2,
		InvalidSignature:             3,
		PointDecompressionError:      4,
		InvalidRangeProof:            5,
		GeneratorSizeMismatch:        6,
		InternalError:                7,
		InvalidInput:                 8,
		SignatureVerificationFailure: 9,
	}
	for code, v := range want {
		assert.Equal(t, v, code.Int(), code.String())
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "NO_ERROR", NoError.String())
	assert.Equal(t, "GENERATOR_SIZE_MISMATCH", GeneratorSizeMismatch.String())
	assert.Equal(t, "UNKNOWN", Code(99).String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, NoError},
		{"context length", stdsig.ErrInvalidContextLength, InvalidContextLength},
		{"wrapped context length", fmt.Errorf("sign: %w", stdsig.ErrInvalidContextLength), InvalidContextLength},
		{"range proof context length", rangeproof.ErrInvalidContextLength, InvalidContextLength},
		{"public key wins over decompression", fmt.Errorf("%w: %w", stdsig.ErrInvalidPublicKey, stdsig.ErrPointDecompression), InvalidPublicKey},
		{"signature", stdsig.ErrInvalidSignature, InvalidSignature},
		{"decompression", stdsig.ErrPointDecompression, PointDecompressionError},
		{"commitment", rangeproof.ErrInvalidCommitment, PointDecompressionError},
		{"verification", stdsig.ErrVerificationFailed, SignatureVerificationFailure},
		{"generators", fmt.Errorf("x: %w", generators.ErrGeneratorSizeMismatch), GeneratorSizeMismatch},
		{"bit size", rangeproof.ErrInvalidBitSize, GeneratorSizeMismatch},
		{"proof encoding", rangeproof.ErrInvalidProof, InvalidRangeProof},
		{"proof verification", rangeproof.ErrVerificationFailed, InvalidRangeProof},
		{"value range", rangeproof.ErrValueOutOfRange, InvalidInput},
		{"length", stdsig.ErrInvalidLength, InvalidInput},
		{"input", ErrInvalidInput, InvalidInput},
		{"unknown", errors.New("boom"), InternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}
