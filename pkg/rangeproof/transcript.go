package rangeproof

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// transcript adds the Bulletproof message conventions to a Merlin
// transcript.
type transcript struct {
	t *merlin.Transcript
}

func (tr transcript) appendMessage(label string, msg []byte) {
	tr.t.AppendMessage([]byte(label), msg)
}

func (tr transcript) appendU64(label string, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	tr.appendMessage(label, buf[:])
}

func (tr transcript) rangeProofDomainSep(n, m uint64) {
	tr.appendMessage("dom-sep", []byte("rangeproof v1"))
	tr.appendU64("n", n)
	tr.appendU64("m", m)
}

func (tr transcript) innerProductDomainSep(n uint64) {
	tr.appendMessage("dom-sep", []byte("ipp v1"))
	tr.appendU64("n", n)
}

func (tr transcript) appendPoint(label string, p *[32]byte) {
	tr.appendMessage(label, p[:])
}

// validateAndAppendPoint rejects the identity before appending, since an
// identity commitment would let a prover cancel terms in the check.
func (tr transcript) validateAndAppendPoint(label string, p *[32]byte) error {
	if *p == ([32]byte{}) {
		return ErrVerificationFailed
	}
	tr.appendPoint(label, p)
	return nil
}

func (tr transcript) appendScalar(label string, s *ristretto.Scalar) {
	tr.appendMessage(label, s.Bytes())
}

// challengeScalar reduces 64 transcript bytes modulo the group order.
func (tr transcript) challengeScalar(label string) *ristretto.Scalar {
	var wide [64]byte
	copy(wide[:], tr.t.ExtractBytes([]byte(label), len(wide)))
	return new(ristretto.Scalar).SetReduced(&wide)
}
