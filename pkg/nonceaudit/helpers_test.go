package nonceaudit

import (
	"crypto/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

func randomScalar(t *testing.T) *edwards25519.Scalar {
	t.Helper()
	var buf [64]byte
	_, err := rand.Read(buf[:])
	require.NoError(t, err)
	s, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	require.NoError(t, err)
	return s
}

// testSigner signs with caller-chosen nonces, which stdsig never allows.
type testSigner struct {
	x   *edwards25519.Scalar
	pub stdsig.PublicKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	x := randomScalar(t)
	var pub stdsig.PublicKey
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(x).Bytes())
	return &testSigner{x: x, pub: pub}
}

func (s *testSigner) sign(t *testing.T, r *edwards25519.Scalar, message, context string) Record {
	t.Helper()
	R := new(edwards25519.Point).ScalarBaseMult(r)
	var rBytes [32]byte
	copy(rBytes[:], R.Bytes())
	e, err := stdsig.Challenge(&rBytes, &s.pub, []byte(context), []byte(message))
	require.NoError(t, err)
	sig := stdsig.SignatureFromComponents(R, edwards25519.NewScalar().MultiplyAdd(e, s.x, r))
	return Record{Signature: sig, PublicKey: s.pub, Message: []byte(message), Context: []byte(context)}
}

// related returns a·r + b.
func related(r *edwards25519.Scalar, rel Relation) *edwards25519.Scalar {
	return edwards25519.NewScalar().MultiplyAdd(scalarFromInt64(rel.A), r, scalarFromInt64(rel.B))
}

func stdsigRecord(t *testing.T, priv *stdsig.PrivateKey, message, context string) Record {
	t.Helper()
	sig, pub, err := stdsig.Sign(priv, []byte(message), []byte(context))
	require.NoError(t, err)
	return Record{Signature: sig, PublicKey: pub, Message: []byte(message), Context: []byte(context)}
}

// fastOptions keeps range searches small enough for unit tests.
func fastOptions() Options {
	opts := DefaultOptions()
	opts.Workers = 2
	opts.Ranges = []SearchRange{
		{A: [2]int64{1, 1}, B: [2]int64{-1000, 1000}, Name: "a=1"},
		{A: [2]int64{-3, 3}, B: [2]int64{-50, 50}, Name: "small"},
	}
	return opts
}
