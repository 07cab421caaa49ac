package stdsig

import (
	"crypto/sha512"
	"fmt"
	"hash"

	"filippo.io/edwards25519"

	"github.com/catalyst-network/catalyst-ffi-go/internal/secret"
)

// Sign produces a deterministic signature over message bound to context and
// returns it together with the signer's public key.
//
// Key expansion: h = SHA-512(seed), x = clamp(h[0:32]), prefix = h[32:64],
// A = x·B.
//
// With ctx encoded as one length byte followed by its bytes:
//
//	r = SHA-512(prefix || ctx || M) mod L
//	R = r·B
//	e = SHA-512(R || A || ctx || M) mod L
//	s = r + e·x mod L
//
// The signature is R || s. Because r depends on ctx, the same message
// signed under two contexts never shares a nonce.
//
// Args:
//   - priv: the 32-byte seed; it is not modified
//   - message: any length, may be empty
//   - context: at most ContextMaxLength bytes
//
// Returns:
//   - the signature and the public key A
//   - ErrInvalidContextLength when context is too long
//
// Identical (priv, message, context) always give byte-identical output; no
// external randomness is consumed.
func Sign(priv *PrivateKey, message, context []byte) (Signature, PublicKey, error) {
	if len(context) > ContextMaxLength {
		return Signature{}, PublicKey{}, fmt.Errorf("%w: %d > %d", ErrInvalidContextLength, len(context), ContextMaxLength)
	}

	k, err := expand(priv)
	if err != nil {
		return Signature{}, PublicKey{}, err
	}
	defer k.wipe()

	r := deriveNonce(&k.prefix, context, message)
	defer r.Set(edwards25519.NewScalar())

	R := new(edwards25519.Point).ScalarBaseMult(r)
	var rBytes [32]byte
	copy(rBytes[:], R.Bytes())

	e := challenge(&rBytes, &k.public, context, message)

	// s = e·a + r
	s := edwards25519.NewScalar().MultiplyAdd(e, k.scalar, r)

	return SignatureFromComponents(R, s), k.public, nil
}

// Challenge computes e = SHA-512(R || A || ctx || M) mod L, the value both
// signer and verifier bind a signature to.
func Challenge(R *[32]byte, pub *PublicKey, context, message []byte) (*edwards25519.Scalar, error) {
	if len(context) > ContextMaxLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidContextLength, len(context), ContextMaxLength)
	}
	return challenge(R, pub, context, message), nil
}

func challenge(R *[32]byte, pub *PublicKey, context, message []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(R[:])
	h.Write(pub[:])
	writeContext(h, context)
	h.Write(message)
	return reduce(h)
}

// deriveNonce computes r = SHA-512(prefix || ctx || M) mod L.
func deriveNonce(prefix *[32]byte, context, message []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(prefix[:])
	writeContext(h, context)
	h.Write(message)
	r := reduce(h)
	h.Reset()
	return r
}

// writeContext writes the one-byte length followed by the context, so that
// the boundary between context and message is unambiguous.
func writeContext(h hash.Hash, context []byte) {
	h.Write([]byte{byte(len(context))})
	h.Write(context)
}

// reduce interprets the 64-byte digest little-endian and reduces it mod L.
func reduce(h hash.Hash) *edwards25519.Scalar {
	digest := secret.NewBuffer(sha512.Size)
	defer digest.Release()
	h.Sum(digest.Bytes()[:0])

	s, err := edwards25519.NewScalar().SetUniformBytes(digest.Bytes())
	if err != nil {
		// SetUniformBytes only fails on a length other than 64.
		panic("stdsig: unexpected digest size")
	}
	return s
}
