package rangeproof

import (
	"errors"
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/generators"
)

const (
	// TranscriptLabel is the domain-separation label of every transcript
	// built by NewTranscript.
	TranscriptLabel = "catalyst-ffi rangeproof"

	// ContextMaxLength bounds the caller context bound into a transcript.
	ContextMaxLength = 255
)

// NewTranscript returns a fresh transcript labelled TranscriptLabel with
// context appended. Prover and verifier must use the same context.
func NewTranscript(context []byte) (*merlin.Transcript, error) {
	if len(context) > ContextMaxLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidContextLength, len(context), ContextMaxLength)
	}
	t := merlin.NewTranscript(TranscriptLabel)
	t.AppendMessage([]byte("context"), context)
	return t, nil
}

// ProveSingle proves that value fits in DefaultBitSize bits using the
// default generators and a fresh transcript bound to context.
func ProveSingle(value uint64, blinding *ristretto.Scalar, context []byte) (*Proof, Commitment, error) {
	if blinding == nil {
		return nil, Commitment{}, errors.New("rangeproof: nil blinding factor")
	}
	t, err := NewTranscript(context)
	if err != nil {
		return nil, Commitment{}, err
	}
	return Prove(generators.Default(), t, value, blinding, DefaultBitSize)
}

// VerifySingle verifies a proof made by ProveSingle.
func VerifySingle(proof *Proof, commitment Commitment, context []byte) error {
	t, err := NewTranscript(context)
	if err != nil {
		return err
	}
	return Verify(generators.Default(), t, proof, commitment, DefaultBitSize)
}
