package nonceaudit

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"filippo.io/edwards25519"
)

// RecoverScalar solves for the signing scalar of two signatures made with
// the same key whose nonces satisfy rel.
//
// Signature equation: s = r + e·x mod L
// Where: r is the nonce, x the clamped signing scalar and
// e = SHA-512(R || A || len(ctx) || ctx || M) the challenge.
//
// With nonces related by r2 = a·r1 + b:
//
//	s1 = r1 + e1·x
//	s2 = r2 + e2·x
//	s2 = a·(s1 - e1·x) + b + e2·x
//	s2 - a·s1 - b = x·(e2 - a·e1)
//
// Therefore:
//
//	x = (s2 - a·s1 - b) / (e2 - a·e1) mod L
//
// Args:
//   - first, second: records signed under the same public key
//   - rel: the coefficients (a, b) of r2 = a·r1 + b
//
// Returns:
//   - the signing scalar x; VerifyScalar checks it against the public key
//   - ErrDegenerate when e2 = a·e1, e.g. for two signatures over the same
//     message and context
//
// It does not check that rel actually holds; a wrong relation yields a
// wrong scalar.
func RecoverScalar(first, second *Record, rel Relation) (*edwards25519.Scalar, error) {
	d1, err := decode(first)
	if err != nil {
		return nil, err
	}
	d2, err := decode(second)
	if err != nil {
		return nil, err
	}
	if d1.key != d2.key {
		return nil, fmt.Errorf("%w: signatures are under different keys", ErrMalformedRecord)
	}
	return recoverScalar(d1, d2, rel)
}

func recoverScalar(d1, d2 *decoded, rel Relation) (*edwards25519.Scalar, error) {
	a := scalarFromInt64(rel.A)
	b := scalarFromInt64(rel.B)

	num := edwards25519.NewScalar().Multiply(a, d1.s)
	num.Subtract(d2.s, num)
	num.Subtract(num, b)

	den := edwards25519.NewScalar().Multiply(a, d1.e)
	den.Subtract(d2.e, den)
	if den.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrDegenerate
	}
	return num.Multiply(num, edwards25519.NewScalar().Invert(den)), nil
}

// VerifyScalar reports whether x·B equals the public key.
func VerifyScalar(x *edwards25519.Scalar, pub []byte) (bool, error) {
	want, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return false, err
	}
	return new(edwards25519.Point).ScalarBaseMult(x).Equal(want) == 1, nil
}

// relationHolds checks R2 == a·R1 + b·B.
func relationHolds(R1, R2 *edwards25519.Point, rel Relation) bool {
	p := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(scalarFromInt64(rel.A), R1, scalarFromInt64(rel.B))
	return p.Equal(R2) == 1
}

// ctxCheckEvery is how many b steps run between cancellation checks.
const ctxCheckEvery = 4096

// searchRange scans r for a relation between R1 and R2. For each a it
// computes a·R1 + b_min·B once and then steps b by adding B.
func searchRange(ctx context.Context, R1, R2 *edwards25519.Point, r SearchRange, skipZeroA bool, tested *atomic.Int64) (Relation, bool, error) {
	base := edwards25519.NewGeneratorPoint()
	for _, a := range aOrder(r.A) {
		if err := ctx.Err(); err != nil {
			return Relation{}, false, err
		}
		if a == 0 && skipZeroA {
			continue
		}
		p := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(scalarFromInt64(a), R1, scalarFromInt64(r.B[0]))
		for b := r.B[0]; b <= r.B[1]; b++ {
			if p.Equal(R2) == 1 {
				tested.Add(b - r.B[0] + 1)
				return Relation{A: a, B: b}, true, nil
			}
			if (b-r.B[0])%ctxCheckEvery == ctxCheckEvery-1 {
				if err := ctx.Err(); err != nil {
					return Relation{}, false, err
				}
			}
			p.Add(p, base)
		}
		tested.Add(r.B[1] - r.B[0] + 1)
	}
	return Relation{}, false, nil
}

// aOrder lists [lo, hi] with a = 1 first when it is in range, since
// counters are by far the most common flaw.
func aOrder(bounds [2]int64) []int64 {
	lo, hi := bounds[0], bounds[1]
	if lo > hi {
		return nil
	}
	out := make([]int64, 0, hi-lo+1)
	if lo <= 1 && hi >= 1 {
		out = append(out, 1)
	}
	for a := lo; a <= hi; a++ {
		if a != 1 {
			out = append(out, a)
		}
	}
	return out
}

// scalarFromInt64 maps v to v mod L.
func scalarFromInt64(v int64) *edwards25519.Scalar {
	mag := uint64(v)
	if v < 0 {
		mag = -mag
	}
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], mag)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		panic("nonceaudit: 64-bit scalar rejected")
	}
	if v < 0 {
		s.Negate(s)
	}
	return s
}
