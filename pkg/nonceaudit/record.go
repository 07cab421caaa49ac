package nonceaudit

import (
	"fmt"

	"filippo.io/edwards25519"

	"github.com/catalyst-network/catalyst-ffi-go/pkg/stdsig"
)

// Record is one observed signature together with everything needed to
// recompute its challenge.
type Record struct {
	Signature stdsig.Signature
	PublicKey stdsig.PublicKey
	Message   []byte
	Context   []byte
}

// Relation is the affine nonce relation r2 = A·r1 + B.
type Relation struct {
	A int64 `json:"a" yaml:"a"`
	B int64 `json:"b" yaml:"b"`
}

func (r Relation) String() string {
	return fmt.Sprintf("r2 = %d*r1 %+d", r.A, r.B)
}

// Finding is a pair of signatures whose nonces satisfy Relation, with the
// signing scalar recovered from them. Verified is true when Scalar·B equals
// the pair's public key; a false value means at least one of the two
// signatures is itself invalid.
type Finding struct {
	Pair     [2]int   `json:"pair" yaml:"pair"`
	Relation Relation `json:"relation" yaml:"relation"`
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Scalar   [32]byte `json:"-" yaml:"-"`
	Verified bool     `json:"verified" yaml:"verified"`
}

// Report summarises one audit run.
type Report struct {
	Signatures   int       `json:"signatures" yaml:"signatures"`
	PairsChecked int       `json:"pairs_checked" yaml:"pairs_checked"`
	Duplicates   int       `json:"duplicates" yaml:"duplicates"`
	Truncated    bool      `json:"truncated" yaml:"truncated"`
	Findings     []Finding `json:"findings" yaml:"findings"`
}

// Clean reports whether no related nonces were found.
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

// decoded is a Record with its group elements parsed and its challenge
// computed once.
type decoded struct {
	R      *edwards25519.Point
	s      *edwards25519.Scalar
	e      *edwards25519.Scalar
	pub    *edwards25519.Point
	rBytes [32]byte
	key    stdsig.PublicKey
}

func decode(rec *Record) (*decoded, error) {
	R, s, err := rec.Signature.Components()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	pub, err := new(edwards25519.Point).SetBytes(rec.PublicKey[:])
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrMalformedRecord, err)
	}
	rBytes := rec.Signature.R()
	e, err := stdsig.Challenge(&rBytes, &rec.PublicKey, rec.Context, rec.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return &decoded{R: R, s: s, e: e, pub: pub, rBytes: rBytes, key: rec.PublicKey}, nil
}
