// Package stdsig implements deterministic Schnorr signatures over the
// edwards25519 group with an optional domain-separation context.
//
// Keys follow the Ed25519 derivation: the 32-byte seed is hashed with
// SHA-512, the low half is clamped into the signing scalar a and the high
// half becomes the nonce prefix. The public key is A = a·B, so public keys are
// interchangeable with RFC 8032 Ed25519 public keys.
//
// Signing:
//
//	r = SHA-512(prefix || ctx || M) mod L
//	R = r·B
//	e = SHA-512(R || A || ctx || M) mod L
//	s = r + e·a mod L
//	signature = R || s
//
// where ctx is the context prefixed with its one-byte length. The context is
// hashed into the nonce as well as the challenge, so the same message signed
// under two contexts never shares r (two s values over one r would reveal a).
//
// Verification accepts iff s < L, R and A decompress, and s·B == R + e·A.
//
// Basic Usage:
//
//	priv, err := stdsig.GenerateKey(nil)
//	sig, pub, err := stdsig.Sign(&priv, []byte("message"), []byte("ctx"))
//	err = stdsig.Verify(&sig, &pub, []byte("message"), []byte("ctx"))
//
// All functions are safe for concurrent use. Private keys are taken by
// pointer and every derived secret (digest, scalar, prefix, nonce) is wiped
// before the function returns.
package stdsig
