package generators

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// chain is an endless stream of points read from a SHAKE256 instance keyed
// with "GeneratorsChain" and a label.
type chain struct {
	xof sha3.ShakeHash
}

func newChain(label []byte) *chain {
	xof := sha3.NewShake256()
	xof.Write([]byte("GeneratorsChain"))
	xof.Write(label)
	return &chain{xof: xof}
}

func (c *chain) next() ristretto.Point {
	var buf [64]byte
	c.xof.Read(buf[:])
	return fromUniformBytes(&buf)
}

// partyLabel is the vector name followed by the little-endian party index.
func partyLabel(name byte, party uint32) []byte {
	label := make([]byte, 5)
	label[0] = name
	binary.LittleEndian.PutUint32(label[1:], party)
	return label
}

// fromUniformBytes maps 64 uniform bytes to a point as the sum of two
// Elligator images, which makes the result indistinguishable from uniform.
func fromUniformBytes(b *[64]byte) ristretto.Point {
	var lo, hi [32]byte
	copy(lo[:], b[:32])
	copy(hi[:], b[32:])

	var p1, p2, p ristretto.Point
	p1.SetElligator(&lo)
	p2.SetElligator(&hi)
	p.Add(&p1, &p2)
	return p
}
