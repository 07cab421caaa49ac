package stdsig

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMessage  = "You are a sacrifice article that I cut up rough now"
	testMessage2 = "Mr. speaker, we are for the big"
)

func newTestKey(t *testing.T) PrivateKey {
	t.Helper()
	priv, err := GenerateKey(nil)
	require.NoError(t, err)
	return priv
}

func TestDerivePublicKey(t *testing.T) {
	t.Run("matches RFC 8032 key derivation", func(t *testing.T) {
		seeds := []string{
			"9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			"4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			"0000000000000000000000000000000000000000000000000000000000000000",
		}
		for _, seedHex := range seeds {
			seed, err := hex.DecodeString(seedHex)
			require.NoError(t, err)
			priv, err := PrivateKeyFromBytes(seed)
			require.NoError(t, err)

			pub, err := DerivePublicKey(&priv)
			require.NoError(t, err)

			want := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
			assert.Equal(t, []byte(want), pub[:], "seed %s", seedHex)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		priv := newTestKey(t)
		first, err := DerivePublicKey(&priv)
		require.NoError(t, err)
		second, err := DerivePublicKey(&priv)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("expansion leaves the seed intact", func(t *testing.T) {
		priv := newTestKey(t)
		seed := priv
		k, err := expand(&priv)
		require.NoError(t, err)
		assert.Equal(t, seed, priv)
		assert.NotEqual(t, [32]byte{}, k.prefix)

		k.wipe()
		assert.Equal(t, [32]byte{}, k.prefix)
		assert.Equal(t, edwards25519.NewScalar().Bytes(), k.scalar.Bytes())
	})
}

func TestGenerateKey(t *testing.T) {
	t.Run("reads from the given reader", func(t *testing.T) {
		src := bytes.Repeat([]byte{0xab}, PrivateKeyLength)
		priv, err := GenerateKey(bytes.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, src, priv[:])
	})

	t.Run("fails on short reader", func(t *testing.T) {
		_, err := GenerateKey(bytes.NewReader([]byte{1, 2, 3}))
		assert.Error(t, err)
	})

	t.Run("generates distinct keys", func(t *testing.T) {
		assert.NotEqual(t, newTestKey(t), newTestKey(t))
	})
}

func TestSignVerify(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)
	ctx := []byte("context")

	t.Run("round trips", func(t *testing.T) {
		sig, pub, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)

		derived, err := DerivePublicKey(&priv)
		require.NoError(t, err)
		assert.Equal(t, derived, pub)

		require.NoError(t, Verify(&sig, &pub, msg, ctx))
	})

	t.Run("round trips with empty message and context", func(t *testing.T) {
		sig, pub, err := Sign(&priv, nil, nil)
		require.NoError(t, err)
		require.NoError(t, Verify(&sig, &pub, []byte{}, []byte{}))
	})

	t.Run("accepts maximum context length", func(t *testing.T) {
		maxCtx := bytes.Repeat([]byte{'c'}, ContextMaxLength)
		sig, pub, err := Sign(&priv, msg, maxCtx)
		require.NoError(t, err)
		require.NoError(t, Verify(&sig, &pub, msg, maxCtx))
	})

	t.Run("rejects tampered message", func(t *testing.T) {
		sig, pub, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)
		err = Verify(&sig, &pub, []byte(testMessage2), ctx)
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("rejects wrong context", func(t *testing.T) {
		sig, pub, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)
		err = Verify(&sig, &pub, msg, []byte("other"))
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("rejects wrong public key", func(t *testing.T) {
		sig, _, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)
		other := newTestKey(t)
		otherPub, err := DerivePublicKey(&other)
		require.NoError(t, err)
		assert.ErrorIs(t, Verify(&sig, &otherPub, msg, ctx), ErrVerificationFailed)
	})

	t.Run("rejects oversized context", func(t *testing.T) {
		long := make([]byte, ContextMaxLength+1)
		_, _, err := Sign(&priv, msg, long)
		assert.ErrorIs(t, err, ErrInvalidContextLength)

		sig, pub, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)
		assert.ErrorIs(t, Verify(&sig, &pub, msg, long), ErrInvalidContextLength)
	})

	t.Run("rejects every single bit flip", func(t *testing.T) {
		sig, pub, err := Sign(&priv, msg, ctx)
		require.NoError(t, err)
		for i := 0; i < SignatureLength*8; i++ {
			tampered := sig
			tampered[i/8] ^= 1 << (i % 8)
			assert.Error(t, Verify(&tampered, &pub, msg, ctx), "bit %d", i)
		}
	})
}

func TestSignDeterminism(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)

	first, _, err := Sign(&priv, msg, []byte("ctx"))
	require.NoError(t, err)
	second, _, err := Sign(&priv, msg, []byte("ctx"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestContextDomainSeparation(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)

	t.Run("different contexts give different signatures and nonces", func(t *testing.T) {
		a, _, err := Sign(&priv, msg, []byte("c1"))
		require.NoError(t, err)
		b, _, err := Sign(&priv, msg, []byte("c2"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.NotEqual(t, a.R(), b.R(), "nonce must depend on the context")
	})

	t.Run("context and message boundary is unambiguous", func(t *testing.T) {
		a, _, err := Sign(&priv, []byte("bc"), []byte("a"))
		require.NoError(t, err)
		b, _, err := Sign(&priv, []byte("c"), []byte("ab"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("empty context differs from absent-looking context", func(t *testing.T) {
		a, _, err := Sign(&priv, msg, nil)
		require.NoError(t, err)
		b, _, err := Sign(&priv, msg, []byte{0})
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

// Zero seed, message "test". The public key is the RFC 8032 one; the
// signatures pin the context encoding, nonce and challenge derivations.
const (
	zeroSeedPublicKey    = "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29"
	zeroSeedSigNoContext = "e9c48d646eef882cd0b70911f4259f14a88b09d5a3e2cfd03351a32eb4136523" +
		"2ef2852c73102ff33639e195e31d73a0397644c90c838e4ca12b1e95a7207801"
	zeroSeedSigCatalyst = "36854c89b9408713957841aad25a1bdd31e0d6c3cc53520ee60e0812fd40734f" +
		"c1fd5c2f26b195326c37ace5fbd915ecd87092107d21cfe3d7dfcd33a96bf40f"
)

func TestZeroSeedGolden(t *testing.T) {
	var zero PrivateKey
	msg := []byte("test")

	pub, err := DerivePublicKey(&zero)
	require.NoError(t, err)
	want := ed25519.NewKeyFromSeed(zero[:]).Public().(ed25519.PublicKey)
	assert.Equal(t, []byte(want), pub[:])
	assert.Equal(t, zeroSeedPublicKey, hex.EncodeToString(pub[:]))

	tests := []struct {
		name    string
		context []byte
		want    string
	}{
		{"empty context", nil, zeroSeedSigNoContext},
		{"catalyst context", []byte("catalyst"), zeroSeedSigCatalyst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, sigPub, err := Sign(&zero, msg, tt.context)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(sig[:]))
			assert.Equal(t, pub, sigPub)
			require.NoError(t, Verify(&sig, &pub, msg, tt.context))

			again, _, err := Sign(&zero, msg, tt.context)
			require.NoError(t, err)
			assert.Equal(t, sig, again)
		})
	}
}

func TestVerifyDecodingErrors(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)
	sig, pub, err := Sign(&priv, msg, nil)
	require.NoError(t, err)

	t.Run("non-canonical s", func(t *testing.T) {
		bad := sig
		for i := 32; i < 64; i++ {
			bad[i] = 0xff
		}
		err := Verify(&bad, &pub, msg, nil)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("undecodable R", func(t *testing.T) {
		bad := sig
		copy(bad[:32], undecodablePoint(t))
		err := Verify(&bad, &pub, msg, nil)
		assert.ErrorIs(t, err, ErrPointDecompression)
	})

	t.Run("undecodable public key", func(t *testing.T) {
		var badPub PublicKey
		copy(badPub[:], undecodablePoint(t))
		err := Verify(&sig, &badPub, msg, nil)
		assert.ErrorIs(t, err, ErrPointDecompression)
		assert.False(t, errors.Is(err, ErrVerificationFailed))
	})
}

func TestValidatePublicKey(t *testing.T) {
	priv := newTestKey(t)
	pub, err := DerivePublicKey(&priv)
	require.NoError(t, err)
	assert.NoError(t, ValidatePublicKey(&pub))

	var bad PublicKey
	copy(bad[:], undecodablePoint(t))
	err = ValidatePublicKey(&bad)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = PublicKeyFromBytes(pub[:31])
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSignatureComponents(t *testing.T) {
	priv := newTestKey(t)
	sig, _, err := Sign(&priv, []byte(testMessage), nil)
	require.NoError(t, err)

	R, s, err := sig.Components()
	require.NoError(t, err)
	assert.Equal(t, sig, SignatureFromComponents(R, s))

	r := sig.R()
	sBytes := sig.S()
	assert.Equal(t, sig[:32], r[:])
	assert.Equal(t, sig[32:], sBytes[:])

	_, err = SignatureFromBytes(sig[:10])
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestChallengeMatchesSignature(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)
	ctx := []byte("ctx")
	sig, pub, err := Sign(&priv, msg, ctx)
	require.NoError(t, err)

	r := sig.R()
	e, err := Challenge(&r, &pub, ctx, msg)
	require.NoError(t, err)

	R, s, err := sig.Components()
	require.NoError(t, err)
	A, err := new(edwards25519.Point).SetBytes(pub[:])
	require.NoError(t, err)
	rhs := new(edwards25519.Point).Add(R, new(edwards25519.Point).ScalarMult(e, A))
	assert.Equal(t, 1, new(edwards25519.Point).ScalarBaseMult(s).Equal(rhs))

	_, err = Challenge(&r, &pub, make([]byte, ContextMaxLength+1), msg)
	assert.ErrorIs(t, err, ErrInvalidContextLength)
}

func TestConcurrentSigning(t *testing.T) {
	priv := newTestKey(t)
	msg := []byte(testMessage)
	want, pub, err := Sign(&priv, msg, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := priv
			sig, _, err := Sign(&k, msg, nil)
			assert.NoError(t, err)
			assert.Equal(t, want, sig)
			assert.NoError(t, Verify(&sig, &pub, msg, nil))
		}()
	}
	wg.Wait()
}

// undecodablePoint returns a y-coordinate with no matching x on the curve.
func undecodablePoint(t *testing.T) []byte {
	t.Helper()
	for y := byte(2); y < 255; y++ {
		b := make([]byte, 32)
		b[0] = y
		if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
			return b
		}
	}
	t.Fatal("no undecodable encoding found")
	return nil
}
