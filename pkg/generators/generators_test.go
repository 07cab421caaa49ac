package generators

import (
	"sync"
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Run("returns one shared instance under concurrency", func(t *testing.T) {
		const callers = 32
		results := make([]*Set, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = Default()
			}(i)
		}
		wg.Wait()

		for _, s := range results {
			assert.Same(t, results[0], s)
		}
		assert.Equal(t, DefaultCapacity, results[0].Bulletproof.Capacity)
	})
}

func TestNewSetIsDeterministic(t *testing.T) {
	a, err := NewSet(8)
	require.NoError(t, err)
	b, err := NewSet(8)
	require.NoError(t, err)

	assert.Equal(t, a.Pedersen.B.Bytes(), b.Pedersen.B.Bytes())
	assert.Equal(t, a.Pedersen.BBlinding.Bytes(), b.Pedersen.BBlinding.Bytes())
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Bulletproof.G[i].Bytes(), b.Bulletproof.G[i].Bytes())
		assert.Equal(t, a.Bulletproof.H[i].Bytes(), b.Bulletproof.H[i].Bytes())
	}

	// A larger set extends the same chains.
	big, err := NewBulletproofGens(16)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Bulletproof.G[i].Bytes(), big.G[i].Bytes())
	}
}

func TestGeneratorsAreDistinct(t *testing.T) {
	set := Default()
	var base ristretto.Point
	base.SetBase()

	seen := map[string]bool{
		string(set.Pedersen.B.Bytes()):         true,
		string(set.Pedersen.BBlinding.Bytes()): true,
	}
	assert.True(t, set.Pedersen.B.Equals(&base))
	assert.Len(t, seen, 2)

	for i := range set.Bulletproof.G {
		for _, p := range []ristretto.Point{set.Bulletproof.G[i], set.Bulletproof.H[i]} {
			key := string(p.Bytes())
			assert.False(t, seen[key], "duplicate generator at %d", i)
			seen[key] = true
		}
	}
}

func TestShare(t *testing.T) {
	gens, err := NewBulletproofGens(32)
	require.NoError(t, err)

	G, H, err := gens.Share(16)
	require.NoError(t, err)
	assert.Len(t, G, 16)
	assert.Len(t, H, 16)

	_, _, err = gens.Share(64)
	assert.ErrorIs(t, err, ErrGeneratorSizeMismatch)

	_, _, err = gens.Share(0)
	assert.ErrorIs(t, err, ErrGeneratorSizeMismatch)
}

func TestNewBulletproofGensRejectsBadCapacity(t *testing.T) {
	_, err := NewBulletproofGens(0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	_, err = NewSet(-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestPedersenCommitIsHomomorphic(t *testing.T) {
	gens := NewPedersenGens()

	var v1, v2, r1, r2, vSum, rSum ristretto.Scalar
	v1.Rand()
	v2.Rand()
	r1.Rand()
	r2.Rand()
	vSum.Add(&v1, &v2)
	rSum.Add(&r1, &r2)

	c1 := gens.Commit(&v1, &r1)
	c2 := gens.Commit(&v2, &r2)
	sum := new(ristretto.Point).Add(c1, c2)
	assert.True(t, sum.Equals(gens.Commit(&vSum, &rSum)))
}
