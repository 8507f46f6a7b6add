package rsa

import (
	"context"
	"errors"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
)

// DoPublic returns x^e mod n.
func (k *Key) DoPublic(x *bigint.Int) (*bigint.Int, error) {
	if k.n == nil {
		return nil, &Error{Op: "DoPublic", Err: ErrNoPublicKey}
	}
	return x.ModPowInt(k.e, k.n)
}

// DoPrivate returns x^d mod n. With CRT parameters it works modulo p and q
// separately and recombines with Garner's formula.
func (k *Key) DoPrivate(x *bigint.Int) (*bigint.Int, error) {
	if !k.HasCRT() {
		return k.DoPrivateDirect(x)
	}
	if k.dmp1 == nil || k.dmq1 == nil || k.coeff == nil {
		return nil, &Error{Op: "DoPrivate", Err: ErrNoPrivateKey}
	}
	xp, err := k.half(x, k.p, k.dmp1)
	if err != nil {
		return nil, &Error{Op: "DoPrivate", Err: err}
	}
	xq, err := k.half(x, k.q, k.dmq1)
	if err != nil {
		return nil, &Error{Op: "DoPrivate", Err: err}
	}
	for xp.Cmp(xq) < 0 {
		xp = xp.Add(k.p)
	}
	h, err := xp.Sub(xq).Mul(k.coeff).Mod(k.p)
	if err != nil {
		return nil, &Error{Op: "DoPrivate", Err: err}
	}
	return h.Mul(k.q).Add(xq), nil
}

// half returns (x mod m)^d mod m.
func (k *Key) half(x, m, d *bigint.Int) (*bigint.Int, error) {
	xm, err := x.Mod(m)
	if err != nil {
		return nil, err
	}
	return xm.ModPow(d, m)
}

// DoPrivateDirect returns x^d mod n without the CRT shortcut.
func (k *Key) DoPrivateDirect(x *bigint.Int) (*bigint.Int, error) {
	if k.n == nil {
		return nil, &Error{Op: "DoPrivate", Err: ErrNoPublicKey}
	}
	if k.d == nil {
		return nil, &Error{Op: "DoPrivate", Err: ErrNoPrivateKey}
	}
	return x.ModPow(k.d, k.n)
}

// Encrypt pads msg with PKCS#1 v1.5 type 2 and returns the ciphertext as an
// even-length lowercase hex string.
func (k *Key) Encrypt(msg []byte) (string, error) {
	if k.n == nil {
		return "", &Error{Op: "Encrypt", Err: ErrNoPublicKey}
	}
	block, err := Pad(msg, k.Size(), k.rng)
	if err != nil {
		if errors.Is(err, ErrMessageTooLong) {
			k.log.Warn(context.Background(), "message too long for RSA", "len", len(msg), "size", k.Size())
		}
		return "", &Error{Op: "Encrypt", Err: err}
	}
	c, err := k.DoPublic(k.kern.FromUnsignedBytes(block))
	if err != nil {
		return "", err
	}
	h := c.Text(16)
	if len(h)&1 == 1 {
		h = "0" + h
	}
	return h, nil
}

// EncryptString encrypts the bytes of s.
func (k *Key) EncryptString(s string) (string, error) {
	return k.Encrypt([]byte(s))
}

// Decrypt parses a hex ciphertext, applies the private transform and strips
// the padding. Malformed hex and values outside [0, n) fail with
// ErrInvalidCiphertext; a bad block fails with ErrInvalidPadding.
func (k *Key) Decrypt(ctext string) ([]byte, error) {
	if k.n == nil {
		return nil, &Error{Op: "Decrypt", Err: ErrNoPublicKey}
	}
	c, err := k.kern.ParseInt(ctext, 16)
	if err != nil {
		return nil, errorf("Decrypt", "%w: %v", ErrInvalidCiphertext, err)
	}
	if c.Sign() < 0 || c.Cmp(k.n) >= 0 {
		return nil, errorf("Decrypt", "%w: out of range", ErrInvalidCiphertext)
	}
	m, err := k.DoPrivate(c)
	if err != nil {
		return nil, err
	}
	msg, err := Unpad(m.Bytes(), k.Size())
	if err != nil {
		k.log.Warn(context.Background(), "PKCS#1 unpad failed", "size", k.Size())
		return nil, &Error{Op: "Decrypt", Err: err}
	}
	return msg, nil
}

// DecryptString decrypts ctext and returns the plaintext as a string.
func (k *Key) DecryptString(ctext string) (string, error) {
	b, err := k.Decrypt(ctext)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
