package rangeproof

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/bwesterb/go-ristretto"
)

// randReader supplies the prover's blinding randomness.
var randReader io.Reader = rand.Reader

func randomScalar() (ristretto.Scalar, error) {
	var wide [64]byte
	var s ristretto.Scalar
	if _, err := io.ReadFull(randReader, wide[:]); err != nil {
		return s, err
	}
	s.SetReduced(&wide)
	return s, nil
}

func randomScalars(n int) ([]ristretto.Scalar, error) {
	out := make([]ristretto.Scalar, n)
	for i := range out {
		s, err := randomScalar()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func scalarFromUint64(v uint64) ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	var s ristretto.Scalar
	s.SetBytes(&buf)
	return s
}

// scalarFromCanonical decodes b and reports whether b was the canonical
// (fully reduced) encoding of the result.
func scalarFromCanonical(b []byte) (ristretto.Scalar, bool) {
	var buf [32]byte
	copy(buf[:], b)
	var s ristretto.Scalar
	s.SetBytes(&buf)
	return s, bytes.Equal(s.Bytes(), buf[:])
}

func oneScalar() ristretto.Scalar {
	var s ristretto.Scalar
	s.SetOne()
	return s
}

// powers returns 1, x, x^2, ..., x^(n-1).
func powers(x *ristretto.Scalar, n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	if n == 0 {
		return out
	}
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], x)
	}
	return out
}

func sum(xs []ristretto.Scalar) ristretto.Scalar {
	var acc ristretto.Scalar
	acc.SetZero()
	for i := range xs {
		acc.Add(&acc, &xs[i])
	}
	return acc
}

func innerProduct(a, b []ristretto.Scalar) ristretto.Scalar {
	var acc, term ristretto.Scalar
	acc.SetZero()
	for i := range a {
		term.Mul(&a[i], &b[i])
		acc.Add(&acc, &term)
	}
	return acc
}

// multiscalarMul returns Σ scalars[i]·points[i].
func multiscalarMul(scalars []ristretto.Scalar, points []ristretto.Point) ristretto.Point {
	var acc, term ristretto.Point
	acc.SetZero()
	for i := range scalars {
		term.ScalarMult(&points[i], &scalars[i])
		acc.Add(&acc, &term)
	}
	return acc
}

func compress(p *ristretto.Point) [32]byte {
	var out [32]byte
	copy(out[:], p.Bytes())
	return out
}

func decompress(b *[32]byte) (ristretto.Point, bool) {
	var p ristretto.Point
	ok := p.SetBytes(b)
	return p, ok
}

// wipeScalars overwrites secret scalars once a proof has been produced.
func wipeScalars(xs ...*ristretto.Scalar) {
	for _, x := range xs {
		x.SetZero()
	}
}

// wipeVectors zeroes every element of each vector.
func wipeVectors(vecs ...[]ristretto.Scalar) {
	for _, vec := range vecs {
		for i := range vec {
			vec[i].SetZero()
		}
	}
}
