package rangeproof

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
)

const (
	// DefaultBitSize is the range width used by ProveSingle and the
	// boundary entry points.
	DefaultBitSize = 64

	// ProofSize is the encoded size of a proof for DefaultBitSize.
	ProofSize = 672

	elementSize = 32
	// A, S, T1, T2, t_x, t_x_blinding, e_blinding, a, b.
	fixedElements = 9
)

// Size returns the encoded length of a proof for an n-bit range.
func Size(n int) int {
	lgN := bits.Len(uint(n)) - 1
	return (fixedElements + 2*lgN) * elementSize
}

// Bytes encodes the proof as A ‖ S ‖ T1 ‖ T2 ‖ t_x ‖ t_x_blinding ‖
// e_blinding ‖ L_0 ‖ R_0 ‖ ... ‖ L_k ‖ R_k ‖ a ‖ b.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, (fixedElements+2*len(p.IPP.L))*elementSize)
	out = append(out, p.A[:]...)
	out = append(out, p.S[:]...)
	out = append(out, p.T1[:]...)
	out = append(out, p.T2[:]...)
	out = append(out, p.TX.Bytes()...)
	out = append(out, p.TXBlinding.Bytes()...)
	out = append(out, p.EBlinding.Bytes()...)
	for j := range p.IPP.L {
		out = append(out, p.IPP.L[j][:]...)
		out = append(out, p.IPP.R[j][:]...)
	}
	out = append(out, p.IPP.A.Bytes()...)
	out = append(out, p.IPP.B.Bytes()...)
	return out
}

// BitSize returns the range width the proof was made for.
func (p *Proof) BitSize() int {
	return 1 << len(p.IPP.L)
}

// ProofFromBytes decodes b. Every point must decompress and every scalar
// must be canonically encoded; otherwise ErrInvalidProof is returned.
func ProofFromBytes(b []byte) (*Proof, error) {
	if len(b)%elementSize != 0 || len(b) < fixedElements*elementSize {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidProof, len(b))
	}
	ippElements := len(b)/elementSize - fixedElements
	if ippElements%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of inner-product points", ErrInvalidProof)
	}
	lgN := ippElements / 2
	if lgN >= 32 {
		return nil, fmt.Errorf("%w: too many rounds", ErrInvalidProof)
	}

	r := reader{buf: b}
	p := &Proof{
		IPP: InnerProductProof{
			L: make([][32]byte, lgN),
			R: make([][32]byte, lgN),
		},
	}
	r.point(&p.A)
	r.point(&p.S)
	r.point(&p.T1)
	r.point(&p.T2)
	p.TX = r.scalar()
	p.TXBlinding = r.scalar()
	p.EBlinding = r.scalar()
	for j := 0; j < lgN; j++ {
		r.point(&p.IPP.L[j])
		r.point(&p.IPP.R[j])
	}
	p.IPP.A = r.scalar()
	p.IPP.B = r.scalar()
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// reader consumes 32-byte elements and records the first decoding error.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) next() []byte {
	el := r.buf[r.off : r.off+elementSize]
	r.off += elementSize
	return el
}

func (r *reader) point(dst *[32]byte) {
	at := r.off
	copy(dst[:], r.next())
	if r.err != nil {
		return
	}
	if _, ok := decompress(dst); !ok {
		r.err = fmt.Errorf("%w: bad point at offset %d", ErrInvalidProof, at)
	}
}

func (r *reader) scalar() ristretto.Scalar {
	at := r.off
	s, ok := scalarFromCanonical(r.next())
	if r.err == nil && !ok {
		r.err = fmt.Errorf("%w: non-canonical scalar at offset %d", ErrInvalidProof, at)
	}
	return s
}
