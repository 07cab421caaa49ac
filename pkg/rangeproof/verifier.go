package rangeproof

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
)

// Verify checks proof against commitment. t must be in the same state the
// prover's transcript was in when Prove was called.
//
// Malformed points in the proof give ErrInvalidProof, an undecodable
// commitment ErrInvalidCommitment, and a well-formed proof that does not
// satisfy the relations ErrVerificationFailed.
func Verify(gens *generators.Set, t *merlin.Transcript, proof *Proof, commitment Commitment, n int) error {
	if !validBitSize(n) {
		return fmt.Errorf("%w: got %d", ErrInvalidBitSize, n)
	}
	G, H, err := gens.Bulletproof.Share(n)
	if err != nil {
		return err
	}
	V, err := commitment.Point()
	if err != nil {
		return err
	}

	pc := gens.Pedersen
	tr := transcript{t: t}
	tr.rangeProofDomainSep(uint64(n), 1)

	Vc := [32]byte(commitment)
	tr.appendPoint("V", &Vc)
	if err := tr.validateAndAppendPoint("A", &proof.A); err != nil {
		return err
	}
	if err := tr.validateAndAppendPoint("S", &proof.S); err != nil {
		return err
	}

	y := tr.challengeScalar("y")
	z := tr.challengeScalar("z")

	if err := tr.validateAndAppendPoint("T_1", &proof.T1); err != nil {
		return err
	}
	if err := tr.validateAndAppendPoint("T_2", &proof.T2); err != nil {
		return err
	}

	x := tr.challengeScalar("x")

	tr.appendScalar("t_x", &proof.TX)
	tr.appendScalar("t_x_blinding", &proof.TXBlinding)
	tr.appendScalar("e_blinding", &proof.EBlinding)

	w := tr.challengeScalar("w")

	uSq, uInvSq, s, err := proof.IPP.verificationScalars(tr, n)
	if err != nil {
		return err
	}

	A, S, T1, T2, err := proof.points()
	if err != nil {
		return err
	}
	L, R, err := proof.IPP.points()
	if err != nil {
		return err
	}

	var zz, zzz, xx ristretto.Scalar
	zz.Square(z)
	zzz.Mul(&zz, z)
	xx.Square(x)

	yPow := powers(y, n)
	two := scalarFromUint64(2)
	twoPow := powers(&two, n)

	// t_x·B + t_x_blinding·B̃ == z²·V + δ(y,z)·B + x·T1 + x²·T2
	lhs := pc.Commit(&proof.TX, &proof.TXBlinding)

	delta := computeDelta(z, &zz, &zzz, yPow, twoPow)
	var rhs, term ristretto.Point
	rhs.ScalarMult(&V, &zz)
	term.ScalarMult(&pc.B, &delta)
	rhs.Add(&rhs, &term)
	term.ScalarMult(&T1, x)
	rhs.Add(&rhs, &term)
	term.ScalarMult(&T2, &xx)
	rhs.Add(&rhs, &term)

	if !lhs.Equals(&rhs) {
		return ErrVerificationFailed
	}

	// A + x·S - e_blinding·B̃ + w·(t_x - a·b)·B
	//   + Σ (-z - a·s_i)·G_i + Σ (z + y^-i·(z²·2^i - b·s_i⁻¹))·H_i
	//   + Σ u_j²·L_j + Σ u_j⁻²·R_j == 0
	a, b := &proof.IPP.A, &proof.IPP.B
	yInv := new(ristretto.Scalar).Inverse(y)
	yInvPow := powers(yInv, n)

	gScalars := make([]ristretto.Scalar, n)
	hScalars := make([]ristretto.Scalar, n)
	var minusZ, tmp ristretto.Scalar
	minusZ.Neg(z)
	for i := 0; i < n; i++ {
		tmp.Mul(a, &s[i])
		gScalars[i].Sub(&minusZ, &tmp)

		// s_i⁻¹ = s_{n-1-i}
		tmp.Mul(b, &s[n-1-i])
		hScalars[i].Mul(&zz, &twoPow[i])
		hScalars[i].Sub(&hScalars[i], &tmp)
		hScalars[i].Mul(&hScalars[i], &yInvPow[i])
		hScalars[i].Add(&hScalars[i], z)
	}

	var check ristretto.Point
	check.ScalarMult(&S, x)
	check.Add(&check, &A)
	term.ScalarMult(&pc.BBlinding, &proof.EBlinding)
	check.Sub(&check, &term)

	var ab, basepointScalar ristretto.Scalar
	ab.Mul(a, b)
	basepointScalar.Sub(&proof.TX, &ab)
	basepointScalar.Mul(&basepointScalar, w)
	term.ScalarMult(&pc.B, &basepointScalar)
	check.Add(&check, &term)

	for _, part := range []ristretto.Point{
		multiscalarMul(gScalars, G),
		multiscalarMul(hScalars, H),
		multiscalarMul(uSq, L),
		multiscalarMul(uInvSq, R),
	} {
		check.Add(&check, &part)
	}

	var identity ristretto.Point
	identity.SetZero()
	if !check.Equals(&identity) {
		return ErrVerificationFailed
	}
	return nil
}

// computeDelta returns (z - z²)·<1,y^n> - z³·<1,2^n>.
func computeDelta(z, zz, zzz *ristretto.Scalar, yPow, twoPow []ristretto.Scalar) ristretto.Scalar {
	sumY := sum(yPow)
	sumTwo := sum(twoPow)

	var delta, tmp ristretto.Scalar
	delta.Sub(z, zz)
	delta.Mul(&delta, &sumY)
	tmp.Mul(zzz, &sumTwo)
	delta.Sub(&delta, &tmp)
	return delta
}

func (p *Proof) points() (A, S, T1, T2 ristretto.Point, err error) {
	var ok bool
	for _, d := range []struct {
		dst *ristretto.Point
		src *[32]byte
	}{{&A, &p.A}, {&S, &p.S}, {&T1, &p.T1}, {&T2, &p.T2}} {
		if *d.dst, ok = decompress(d.src); !ok {
			return A, S, T1, T2, ErrInvalidProof
		}
	}
	return A, S, T1, T2, nil
}

func (p *InnerProductProof) points() (L, R []ristretto.Point, err error) {
	L = make([]ristretto.Point, len(p.L))
	R = make([]ristretto.Point, len(p.R))
	var ok bool
	for j := range p.L {
		if L[j], ok = decompress(&p.L[j]); !ok {
			return nil, nil, ErrInvalidProof
		}
		if R[j], ok = decompress(&p.R[j]); !ok {
			return nil, nil, ErrInvalidProof
		}
	}
	return L, R, nil
}
