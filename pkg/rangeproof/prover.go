package rangeproof

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
)

// Proof is a single-value range proof.
type Proof struct {
	A          [32]byte
	S          [32]byte
	T1         [32]byte
	T2         [32]byte
	TX         ristretto.Scalar
	TXBlinding ristretto.Scalar
	EBlinding  ristretto.Scalar
	IPP        InnerProductProof
}

func validBitSize(n int) bool {
	return n == 8 || n == 16 || n == 32 || n == 64
}

// Prove creates a proof that value lies in [0, 2^n) and returns it with the
// commitment it is bound to. t must be in the state the verifier will
// reproduce; Prove advances it.
func Prove(gens *generators.Set, t *merlin.Transcript, value uint64, blinding *ristretto.Scalar, n int) (*Proof, Commitment, error) {
	if !validBitSize(n) {
		return nil, Commitment{}, fmt.Errorf("%w: got %d", ErrInvalidBitSize, n)
	}
	G, H, err := gens.Bulletproof.Share(n)
	if err != nil {
		return nil, Commitment{}, err
	}
	if n < 64 && value>>uint(n) != 0 {
		return nil, Commitment{}, fmt.Errorf("%w: %d bits", ErrValueOutOfRange, n)
	}

	pc := gens.Pedersen
	tr := transcript{t: t}
	tr.rangeProofDomainSep(uint64(n), 1)

	v := scalarFromUint64(value)
	defer wipeScalars(&v)
	V := compress(pc.Commit(&v, blinding))
	tr.appendPoint("V", &V)

	// aL holds the bits of value and aR = aL - 1, so aL∘aR = 0.
	one := oneScalar()
	aL := make([]ristretto.Scalar, n)
	aR := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		aL[i] = scalarFromUint64((value >> uint(i)) & 1)
		aR[i].Sub(&aL[i], &one)
	}

	aBlinding, err := randomScalar()
	if err != nil {
		return nil, Commitment{}, err
	}
	A := vectorCommit(&pc.BBlinding, &aBlinding, aL, G, aR, H)

	sBlinding, err := randomScalar()
	if err != nil {
		return nil, Commitment{}, err
	}
	sL, err := randomScalars(n)
	if err != nil {
		return nil, Commitment{}, err
	}
	sR, err := randomScalars(n)
	if err != nil {
		return nil, Commitment{}, err
	}
	S := vectorCommit(&pc.BBlinding, &sBlinding, sL, G, sR, H)

	proof := &Proof{A: compress(&A), S: compress(&S)}
	tr.appendPoint("A", &proof.A)
	tr.appendPoint("S", &proof.S)

	y := tr.challengeScalar("y")
	z := tr.challengeScalar("z")

	var zz ristretto.Scalar
	zz.Square(z)
	two := scalarFromUint64(2)
	yPow := powers(y, n)
	twoPow := powers(&two, n)

	// l(X) = (aL - z) + sL·X
	// r(X) = y^n∘(aR + z + sR·X) + z²·2^n
	l0 := make([]ristretto.Scalar, n)
	r0 := make([]ristretto.Scalar, n)
	r1 := make([]ristretto.Scalar, n)
	var tmp ristretto.Scalar
	for i := 0; i < n; i++ {
		l0[i].Sub(&aL[i], z)

		r0[i].Add(&aR[i], z)
		r0[i].Mul(&r0[i], &yPow[i])
		tmp.Mul(&zz, &twoPow[i])
		r0[i].Add(&r0[i], &tmp)

		r1[i].Mul(&yPow[i], &sR[i])
	}

	// t(X) = <l(X), r(X)> = t0 + t1·X + t2·X²
	t0 := innerProduct(l0, r0)
	t1 := innerProduct(l0, r1)
	tmp = innerProduct(sL, r0)
	t1.Add(&t1, &tmp)
	t2 := innerProduct(sL, r1)

	t1Blinding, err := randomScalar()
	if err != nil {
		return nil, Commitment{}, err
	}
	t2Blinding, err := randomScalar()
	if err != nil {
		return nil, Commitment{}, err
	}
	proof.T1 = compress(pc.Commit(&t1, &t1Blinding))
	proof.T2 = compress(pc.Commit(&t2, &t2Blinding))
	tr.appendPoint("T_1", &proof.T1)
	tr.appendPoint("T_2", &proof.T2)

	x := tr.challengeScalar("x")
	var xx ristretto.Scalar
	xx.Square(x)

	proof.TX = evalQuadratic(&t0, &t1, &t2, x, &xx)
	var zzGamma ristretto.Scalar
	zzGamma.Mul(&zz, blinding)
	proof.TXBlinding = evalQuadratic(&zzGamma, &t1Blinding, &t2Blinding, x, &xx)
	proof.EBlinding.Mul(&sBlinding, x)
	proof.EBlinding.Add(&proof.EBlinding, &aBlinding)

	lVec := make([]ristretto.Scalar, n)
	rVec := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		tmp.Mul(&sL[i], x)
		lVec[i].Add(&l0[i], &tmp)
		tmp.Mul(&r1[i], x)
		rVec[i].Add(&r0[i], &tmp)
	}

	tr.appendScalar("t_x", &proof.TX)
	tr.appendScalar("t_x_blinding", &proof.TXBlinding)
	tr.appendScalar("e_blinding", &proof.EBlinding)

	w := tr.challengeScalar("w")
	var Q ristretto.Point
	Q.ScalarMult(&pc.B, w)

	yInv := new(ristretto.Scalar).Inverse(y)
	yInvPow := powers(yInv, n)
	Hprime := make([]ristretto.Point, n)
	for i := range Hprime {
		Hprime[i].ScalarMult(&H[i], &yInvPow[i])
	}

	proof.IPP = *proveInnerProduct(tr, &Q, G, Hprime, lVec, rVec)

	wipeScalars(&aBlinding, &sBlinding, &t1Blinding, &t2Blinding, &zzGamma, &t0, &t1, &t2)
	wipeVectors(aL, aR, sL, sR, l0, r0, r1)
	return proof, Commitment(V), nil
}

// vectorCommit returns blind·base + <a,G> + <b,H>.
func vectorCommit(base *ristretto.Point, blind *ristretto.Scalar, a []ristretto.Scalar, G []ristretto.Point, b []ristretto.Scalar, H []ristretto.Point) ristretto.Point {
	var acc ristretto.Point
	acc.ScalarMult(base, blind)
	ga := multiscalarMul(a, G)
	hb := multiscalarMul(b, H)
	acc.Add(&acc, &ga)
	acc.Add(&acc, &hb)
	return acc
}

// evalQuadratic returns c0 + c1·x + c2·x².
func evalQuadratic(c0, c1, c2, x, xx *ristretto.Scalar) ristretto.Scalar {
	var out, term ristretto.Scalar
	out.Mul(c1, x)
	term.Mul(c2, xx)
	out.Add(&out, &term)
	out.Add(&out, c0)
	return out
}
