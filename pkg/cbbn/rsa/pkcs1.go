package rsa

import (
	"fmt"
	"io"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
)

// Pad builds the n-byte PKCS#1 v1.5 type 2 block
//
//	00 02 <random nonzero bytes> 00 <msg>
//
// drawing the filler from rng. It fails with ErrMessageTooLong when
// n < len(msg)+11.
func Pad(msg []byte, n int, rng io.Reader) ([]byte, error) {
	if n < len(msg)+11 {
		return nil, ErrMessageTooLong
	}
	ba := make([]byte, n)
	i := n - len(msg)
	copy(ba[i:], msg)
	i--
	ba[i] = 0
	for i > 2 {
		b, err := prng.NonZeroByte(rng)
		if err != nil {
			return nil, fmt.Errorf("rsa: reading padding bytes: %w", err)
		}
		i--
		ba[i] = b
	}
	ba[1] = 2
	ba[0] = 0
	return ba, nil
}

// Unpad recovers the message from a decrypted block b, the minimal
// big-endian encoding of the plaintext integer, for a modulus of n bytes.
// Leading zero bytes are skipped; the rest must be exactly n-1 bytes long,
// start with 0x02 and contain a zero separator.
func Unpad(b []byte, n int) ([]byte, error) {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	if len(b)-i != n-1 || i >= len(b) || b[i] != 2 {
		return nil, ErrInvalidPadding
	}
	i++
	for i < len(b) && b[i] != 0 {
		i++
	}
	if i >= len(b) {
		return nil, ErrInvalidPadding
	}
	return append([]byte{}, b[i+1:]...), nil
}
