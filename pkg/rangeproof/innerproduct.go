package rangeproof

import (
	"math/bits"

	"github.com/bwesterb/go-ristretto"
)

// InnerProductProof shows knowledge of vectors a, b with
// P = <a,G> + <b,H> + <a,b>·Q in log2(n) rounds.
type InnerProductProof struct {
	L [][32]byte
	R [][32]byte
	A ristretto.Scalar
	B ristretto.Scalar
}

// proveInnerProduct folds the vectors in half each round. G and H are
// copied; the witness vectors a and b are folded in place and are all zero
// when it returns.
func proveInnerProduct(tr transcript, Q *ristretto.Point, G, H []ristretto.Point, a, b []ristretto.Scalar) *InnerProductProof {
	defer wipeVectors(a, b)

	n := len(G)
	G = append([]ristretto.Point(nil), G...)
	H = append([]ristretto.Point(nil), H...)

	tr.innerProductDomainSep(uint64(n))

	lgN := bits.Len(uint(n)) - 1
	proof := &InnerProductProof{
		L: make([][32]byte, 0, lgN),
		R: make([][32]byte, 0, lgN),
	}

	for n > 1 {
		n /= 2
		aL, aR := a[:n], a[n:2*n]
		bL, bR := b[:n], b[n:2*n]
		GL, GR := G[:n], G[n:2*n]
		HL, HR := H[:n], H[n:2*n]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		L := foldCommitment(aL, GR, bR, HL, &cL, Q)
		R := foldCommitment(aR, GL, bL, HR, &cR, Q)
		Lc, Rc := compress(&L), compress(&R)
		proof.L = append(proof.L, Lc)
		proof.R = append(proof.R, Rc)
		tr.appendPoint("L", &Lc)
		tr.appendPoint("R", &Rc)

		u := tr.challengeScalar("u")
		uInv := new(ristretto.Scalar).Inverse(u)

		var s1, s2 ristretto.Scalar
		var p1, p2 ristretto.Point
		for i := 0; i < n; i++ {
			s1.Mul(&aL[i], u)
			s2.Mul(&aR[i], uInv)
			aL[i].Add(&s1, &s2)

			s1.Mul(&bL[i], uInv)
			s2.Mul(&bR[i], u)
			bL[i].Add(&s1, &s2)

			p1.ScalarMult(&GL[i], uInv)
			p2.ScalarMult(&GR[i], u)
			GL[i].Add(&p1, &p2)

			p1.ScalarMult(&HL[i], u)
			p2.ScalarMult(&HR[i], uInv)
			HL[i].Add(&p1, &p2)
		}
		a, b, G, H = aL, bL, GL, HL
	}

	proof.A = a[0]
	proof.B = b[0]
	return proof
}

// foldCommitment returns <x,P> + <y,R> + c·Q.
func foldCommitment(x []ristretto.Scalar, P []ristretto.Point, y []ristretto.Scalar, R []ristretto.Point, c *ristretto.Scalar, Q *ristretto.Point) ristretto.Point {
	acc := multiscalarMul(x, P)
	right := multiscalarMul(y, R)
	var cQ ristretto.Point
	cQ.ScalarMult(Q, c)
	acc.Add(&acc, &right)
	acc.Add(&acc, &cQ)
	return acc
}

// verificationScalars replays the rounds against tr and returns u_j², u_j⁻²
// and the folded-generator coefficients s_i = Π_j u_j^(±1), where the sign
// for round j is the bit of i at position lg(n)-1-j.
func (p *InnerProductProof) verificationScalars(tr transcript, n int) (uSq, uInvSq, s []ristretto.Scalar, err error) {
	lgN := len(p.L)
	if lgN >= 32 || len(p.R) != lgN || 1<<lgN != n {
		return nil, nil, nil, ErrInvalidProof
	}

	tr.innerProductDomainSep(uint64(n))

	challenges := make([]ristretto.Scalar, lgN)
	for j := 0; j < lgN; j++ {
		if err := tr.validateAndAppendPoint("L", &p.L[j]); err != nil {
			return nil, nil, nil, err
		}
		if err := tr.validateAndAppendPoint("R", &p.R[j]); err != nil {
			return nil, nil, nil, err
		}
		challenges[j] = *tr.challengeScalar("u")
	}

	uSq = make([]ristretto.Scalar, lgN)
	uInvSq = make([]ristretto.Scalar, lgN)
	allInv := oneScalar()
	for j := range challenges {
		var inv ristretto.Scalar
		inv.Inverse(&challenges[j])
		allInv.Mul(&allInv, &inv)
		uSq[j].Square(&challenges[j])
		uInvSq[j].Square(&inv)
	}

	s = make([]ristretto.Scalar, n)
	s[0] = allInv
	for i := 1; i < n; i++ {
		lgI := bits.Len(uint(i)) - 1
		k := 1 << lgI
		s[i].Mul(&s[i-k], &uSq[lgN-1-lgI])
	}
	return uSq, uInvSq, s, nil
}
