package nonceaudit

import (
	"context"
	"sync/atomic"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

func TestTestSignerProducesValidSignatures(t *testing.T) {
	s := newTestSigner(t)
	rec := s.sign(t, randomScalar(t), "hello", "ctx")
	assert.NoError(t, stdsig.Verify(&rec.Signature, &rec.PublicKey, rec.Message, rec.Context))
}

func TestRecoverScalar(t *testing.T) {
	relations := []Relation{{1, 0}, {1, 1}, {1, -7}, {2, 1}, {-1, 0}, {5, -123456}}
	for _, rel := range relations {
		t.Run(rel.String(), func(t *testing.T) {
			s := newTestSigner(t)
			r1 := randomScalar(t)
			first := s.sign(t, r1, "first message", "")
			second := s.sign(t, related(r1, rel), "second message", "")

			x, err := RecoverScalar(&first, &second, rel)
			require.NoError(t, err)
			assert.Equal(t, s.x.Bytes(), x.Bytes())

			ok, err := VerifyScalar(x, s.pub[:])
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	t.Run("wrong relation gives a wrong scalar", func(t *testing.T) {
		s := newTestSigner(t)
		r1 := randomScalar(t)
		first := s.sign(t, r1, "a", "")
		second := s.sign(t, related(r1, Relation{1, 1}), "b", "")

		x, err := RecoverScalar(&first, &second, Relation{1, 2})
		require.NoError(t, err)
		ok, err := VerifyScalar(x, s.pub[:])
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate signatures are degenerate", func(t *testing.T) {
		s := newTestSigner(t)
		r := randomScalar(t)
		first := s.sign(t, r, "same", "ctx")
		second := s.sign(t, r, "same", "ctx")
		_, err := RecoverScalar(&first, &second, Relation{1, 0})
		assert.ErrorIs(t, err, ErrDegenerate)
	})

	t.Run("different contexts still leak the key", func(t *testing.T) {
		s := newTestSigner(t)
		r := randomScalar(t)
		first := s.sign(t, r, "same", "ctx-a")
		second := s.sign(t, r, "same", "ctx-b")
		x, err := RecoverScalar(&first, &second, Relation{1, 0})
		require.NoError(t, err)
		assert.Equal(t, s.x.Bytes(), x.Bytes())
	})

	t.Run("different keys", func(t *testing.T) {
		first := newTestSigner(t).sign(t, randomScalar(t), "a", "")
		second := newTestSigner(t).sign(t, randomScalar(t), "b", "")
		_, err := RecoverScalar(&first, &second, Relation{1, 0})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("malformed signature", func(t *testing.T) {
		s := newTestSigner(t)
		first := s.sign(t, randomScalar(t), "a", "")
		second := first
		for i := 32; i < 64; i++ {
			second.Signature[i] = 0xff
		}
		_, err := RecoverScalar(&first, &second, Relation{1, 0})
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.ErrorIs(t, err, stdsig.ErrInvalidSignature)
	})
}

func TestVerifyScalar(t *testing.T) {
	_, err := VerifyScalar(randomScalar(t), make([]byte, 31))
	assert.Error(t, err)
}

func TestRelationHolds(t *testing.T) {
	r1 := randomScalar(t)
	R1 := new(edwards25519.Point).ScalarBaseMult(r1)
	R2 := new(edwards25519.Point).ScalarBaseMult(related(r1, Relation{3, -9}))

	assert.True(t, relationHolds(R1, R2, Relation{3, -9}))
	assert.False(t, relationHolds(R1, R2, Relation{3, 9}))
	assert.False(t, relationHolds(R1, R2, Relation{1, 0}))
}

func TestSearchRange(t *testing.T) {
	r1 := randomScalar(t)
	R1 := new(edwards25519.Point).ScalarBaseMult(r1)
	want := Relation{-2, -250}
	R2 := new(edwards25519.Point).ScalarBaseMult(related(r1, want))

	t.Run("finds the relation", func(t *testing.T) {
		var tested atomic.Int64
		got, ok, err := searchRange(context.Background(), R1, R2, SearchRange{A: [2]int64{-3, 3}, B: [2]int64{-300, 300}}, true, &tested)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Positive(t, tested.Load())
	})

	t.Run("outside the range", func(t *testing.T) {
		var tested atomic.Int64
		_, ok, err := searchRange(context.Background(), R1, R2, SearchRange{A: [2]int64{1, 3}, B: [2]int64{-300, 300}}, true, &tested)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(3*601), tested.Load())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var tested atomic.Int64
		_, _, err := searchRange(ctx, R1, R2, SearchRange{A: [2]int64{1, 1}, B: [2]int64{-10, 10}}, true, &tested)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAOrder(t *testing.T) {
	assert.Equal(t, []int64{1, -1, 0, 2}, aOrder([2]int64{-1, 2}))
	assert.Equal(t, []int64{2, 3}, aOrder([2]int64{2, 3}))
	assert.Empty(t, aOrder([2]int64{3, 2}))
}

func TestScalarFromInt64(t *testing.T) {
	sum := edwards25519.NewScalar().Add(scalarFromInt64(-12345), scalarFromInt64(12345))
	assert.Equal(t, edwards25519.NewScalar().Bytes(), sum.Bytes())

	one := scalarFromInt64(1)
	assert.Equal(t, byte(1), one.Bytes()[0])
}
