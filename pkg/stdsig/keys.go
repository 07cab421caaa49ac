package stdsig

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/catalyst-network/catalyst-ffi-go/internal/secret"
)

// Fixed encoding sizes.
const (
	PrivateKeyLength = 32
	PublicKeyLength  = 32
	SignatureLength  = 64
	ContextMaxLength = 255
)

// PrivateKey is a 32-byte secret seed. Any 32 bytes are a valid seed,
// including all zeros.
type PrivateKey [PrivateKeyLength]byte

// PublicKey is a compressed edwards25519 point.
type PublicKey [PublicKeyLength]byte

// Wipe zeroes the seed.
func (k *PrivateKey) Wipe() {
	secret.Wipe(k[:])
}

// expandedKey is the per-call expansion of a seed. It must be wiped.
type expandedKey struct {
	scalar *edwards25519.Scalar
	prefix [32]byte
	public PublicKey
}

func (k *expandedKey) wipe() {
	if k.scalar != nil {
		k.scalar.Set(edwards25519.NewScalar())
	}
	secret.Wipe(k.prefix[:])
}

// expand hashes the seed with SHA-512, clamps the low half into the signing
// scalar and keeps the high half as the nonce prefix.
func expand(seed *PrivateKey) (*expandedKey, error) {
	digest := secret.NewBuffer(sha512.Size)
	defer digest.Release()

	sum := sha512.Sum512(seed[:])
	copy(digest.Bytes(), sum[:])
	secret.Wipe(sum[:])

	a, err := edwards25519.NewScalar().SetBytesWithClamping(digest.Bytes()[:32])
	if err != nil {
		return nil, fmt.Errorf("clamping signing scalar: %w", err)
	}

	k := &expandedKey{scalar: a}
	copy(k.prefix[:], digest.Bytes()[32:])
	copy(k.public[:], new(edwards25519.Point).ScalarBaseMult(a).Bytes())
	return k, nil
}

// DerivePublicKey returns A = a·B for the clamped scalar a derived from the
// seed. The result is deterministic.
func DerivePublicKey(priv *PrivateKey) (PublicKey, error) {
	k, err := expand(priv)
	if err != nil {
		return PublicKey{}, err
	}
	defer k.wipe()
	return k.public, nil
}

// GenerateKey reads a fresh seed from r, or from crypto/rand when r is nil.
func GenerateKey(r io.Reader) (PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}
	var priv PrivateKey
	if _, err := io.ReadFull(r, priv[:]); err != nil {
		priv.Wipe()
		return PrivateKey{}, fmt.Errorf("reading key material: %w", err)
	}
	return priv, nil
}

// ValidatePublicKey checks that pub decompresses to a curve point.
func ValidatePublicKey(pub *PublicKey) error {
	if _, err := decodePoint(pub[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return nil
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey and validates it.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != PublicKeyLength {
		return pub, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidLength, PublicKeyLength, len(b))
	}
	copy(pub[:], b)
	if err := ValidatePublicKey(&pub); err != nil {
		return PublicKey{}, err
	}
	return pub, nil
}

// PrivateKeyFromBytes copies a 32-byte slice into a PrivateKey.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	var priv PrivateKey
	if len(b) != PrivateKeyLength {
		return priv, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidLength, PrivateKeyLength, len(b))
	}
	copy(priv[:], b)
	return priv, nil
}

func decodePoint(b []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPointDecompression, err)
	}
	return p, nil
}
