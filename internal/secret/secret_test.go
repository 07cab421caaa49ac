package secret

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipe(t *testing.T) {
	t.Run("zeroes every byte", func(t *testing.T) {
		b := []byte{1, 2, 3, 4, 5}
		Wipe(b)
		assert.Equal(t, []byte{0, 0, 0, 0, 0}, b)
	})

	t.Run("accepts empty and nil slices", func(t *testing.T) {
		assert.NotPanics(t, func() { Wipe(nil) })
		assert.NotPanics(t, func() { Wipe([]byte{}) })
	})
}

func TestWithKey(t *testing.T) {
	src := [KeySize]byte{}
	for i := range src {
		src[i] = byte(i + 1)
	}

	t.Run("passes a copy and wipes it afterwards", func(t *testing.T) {
		var seen *Key
		err := WithKey(&src, func(k *Key) error {
			assert.Equal(t, src[:], k[:])
			seen = k
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, Key{}, *seen)
		assert.Equal(t, byte(1), src[0], "source must not be modified")
	})

	t.Run("wipes on error path", func(t *testing.T) {
		var seen *Key
		sentinel := errors.New("boom")
		err := WithKey(&src, func(k *Key) error {
			seen = k
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, Key{}, *seen)
	})

	t.Run("wipes on panic", func(t *testing.T) {
		var seen *Key
		assert.Panics(t, func() {
			_ = WithKey(&src, func(k *Key) error {
				seen = k
				panic("boom")
			})
		})
		assert.Equal(t, Key{}, *seen)
	})

	t.Run("nil source yields zero key", func(t *testing.T) {
		err := WithKey(nil, func(k *Key) error {
			assert.Equal(t, Key{}, *k)
			return nil
		})
		require.NoError(t, err)
	})
}

func TestBuffer(t *testing.T) {
	buf := NewBuffer(8)
	copy(buf.Bytes(), "secret!!")
	b := buf.Bytes()
	buf.Release()
	assert.Equal(t, make([]byte, 8), b)

	var nilBuf *Buffer
	assert.NotPanics(t, nilBuf.Release)
}
