package stdsig

import (
	"fmt"

	"filippo.io/edwards25519"
)

// Signature is the 64-byte encoding R || s.
type Signature [SignatureLength]byte

// R returns the encoded commitment point, the first half of the signature.
func (sig *Signature) R() [32]byte {
	var r [32]byte
	copy(r[:], sig[:32])
	return r
}

// S returns the encoded response scalar, the second half of the signature.
func (sig *Signature) S() [32]byte {
	var s [32]byte
	copy(s[:], sig[32:])
	return s
}

// Components decodes the signature into its point R and scalar s.
// A non-canonical s (s >= L) is reported as ErrInvalidSignature, an R that
// is not a curve point as ErrPointDecompression.
func (sig *Signature) Components() (*edwards25519.Point, *edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	R, err := decodePoint(sig[:32])
	if err != nil {
		return nil, nil, err
	}
	return R, s, nil
}

// SignatureFromComponents encodes R and s as R || s.
func SignatureFromComponents(R *edwards25519.Point, s *edwards25519.Scalar) Signature {
	var sig Signature
	copy(sig[:32], R.Bytes())
	copy(sig[32:], s.Bytes())
	return sig
}

// SignatureFromBytes copies a 64-byte slice into a Signature. It does not
// decode the components; Verify does that.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidLength, SignatureLength, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}
