// Package secret holds short-lived copies of key material and wipes them
// when the owning scope ends.
//
// Callers never keep a reference to caller-owned secret memory. They copy it
// into a Key or Buffer, use it inside a With* scope, and rely on the deferred
// wipe to clear the copy on every return path, including panics.
package secret

import (
	"crypto/subtle"
	"runtime"
)

// KeySize is the size of private keys and blinding factors.
const KeySize = 32

// Key is a Go-owned copy of a 32-byte secret.
type Key [KeySize]byte

// Wipe overwrites the key with zeros.
func (k *Key) Wipe() {
	if k == nil {
		return
	}
	Wipe(k[:])
}

// Wipe zeroes b. The copy goes through subtle.ConstantTimeCopy so the
// compiler cannot prove the store dead and drop it.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(&b)
}

// WithKey copies src into a scoped Key, runs fn and wipes the copy before
// returning. The wipe also runs if fn panics.
func WithKey(src *[KeySize]byte, fn func(k *Key) error) error {
	var k Key
	defer k.Wipe()
	if src != nil {
		copy(k[:], src[:])
	}
	return fn(&k)
}

// Buffer is a scoped scratch buffer for intermediate secret values such as
// hash outputs. Release wipes it.
type Buffer struct {
	b []byte
}

// NewBuffer returns a zeroed buffer of n bytes.
func NewBuffer(n int) *Buffer {
	return &Buffer{b: make([]byte, n)}
}

// Bytes returns the underlying slice. It is only valid until Release.
func (s *Buffer) Bytes() []byte {
	return s.b
}

// Release wipes the buffer.
func (s *Buffer) Release() {
	if s == nil {
		return
	}
	Wipe(s.b)
}
