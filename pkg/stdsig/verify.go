package stdsig

import (
	"fmt"

	"filippo.io/edwards25519"
)

// Verify checks sig over message and context against pub.
//
// It returns nil when s·B == R + e·A. Decoding failures are reported before
// the equation is evaluated: ErrInvalidContextLength, ErrInvalidSignature
// (s not canonical) or ErrPointDecompression (R or A). A well-formed
// signature that does not satisfy the equation yields ErrVerificationFailed.
func Verify(sig *Signature, pub *PublicKey, message, context []byte) error {
	if len(context) > ContextMaxLength {
		return fmt.Errorf("%w: %d > %d", ErrInvalidContextLength, len(context), ContextMaxLength)
	}

	R, s, err := sig.Components()
	if err != nil {
		return err
	}
	A, err := decodePoint(pub[:])
	if err != nil {
		return err
	}

	rBytes := sig.R()
	e := challenge(&rBytes, pub, context, message)

	lhs := new(edwards25519.Point).ScalarBaseMult(s)
	rhs := new(edwards25519.Point).Add(R, new(edwards25519.Point).ScalarMult(e, A))
	if lhs.Equal(rhs) != 1 {
		return ErrVerificationFailed
	}
	return nil
}
