package rsa

import (
	"context"
	"io"
	"strconv"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/logging"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
)

// MaxGenerateAttempts is the default number of prime pairs Generate draws
// before giving up.
const MaxGenerateAttempts = 64

// Key is an RSA key. A fresh Key is empty; populate it with SetPublic,
// SetPrivate, SetPrivateEx, SetParams or Generate. The CRT fields are
// optional and private operations fall back to a plain d exponentiation
// without them.
//
// A Key may be read concurrently only if its random source allows it; the
// setters and Generate must not race with other calls.
type Key struct {
	kern     *bigint.Kernel
	rng      io.Reader
	log      logging.Logger
	attempts int

	n *bigint.Int
	e uint32

	d     *bigint.Int
	p     *bigint.Int
	q     *bigint.Int
	dmp1  *bigint.Int
	dmq1  *bigint.Int
	coeff *bigint.Int
}

// Option configures a Key.
type Option func(*Key)

// WithKernel selects the digit kernel used for every value in the key.
func WithKernel(k *bigint.Kernel) Option {
	return func(key *Key) {
		if k != nil {
			key.kern = k
		}
	}
}

// WithRand sets the random source for padding and key generation.
func WithRand(r io.Reader) Option {
	return func(key *Key) {
		if r != nil {
			key.rng = r
		}
	}
}

// WithLogger sets the logger that receives invalid-key and padding reports.
func WithLogger(l logging.Logger) Option {
	return func(key *Key) {
		if l != nil {
			key.log = l
		}
	}
}

// WithMaxAttempts bounds the outer retry loop of Generate.
func WithMaxAttempts(n int) Option {
	return func(key *Key) {
		if n > 0 {
			key.attempts = n
		}
	}
}

// NewKey returns an empty key on the default kernel, reading randomness from
// the system CSPRNG and discarding logs unless overridden.
func NewKey(opts ...Option) *Key {
	k := &Key{
		kern:     bigint.Default(),
		rng:      prng.System(),
		log:      logging.Discard(),
		attempts: MaxGenerateAttempts,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// N returns the modulus, or nil for an empty key.
func (k *Key) N() *bigint.Int { return k.n }

// E returns the public exponent.
func (k *Key) E() uint32 { return k.e }

// HasPrivate reports whether the private exponent is set.
func (k *Key) HasPrivate() bool { return k.d != nil }

// HasCRT reports whether the CRT parameters are set.
func (k *Key) HasCRT() bool { return k.p != nil && k.q != nil }

// Size returns the modulus length in bytes.
func (k *Key) Size() int {
	if k.n == nil {
		return 0
	}
	return (k.n.BitLen() + 7) >> 3
}

// Public returns a public-only copy sharing the kernel, random source and
// logger.
func (k *Key) Public() *Key {
	pub := &Key{kern: k.kern, rng: k.rng, log: k.log, attempts: k.attempts, e: k.e}
	if k.n != nil {
		pub.n = k.n.Clone()
	}
	return pub
}

func (k *Key) parseHex(field, s string) (*bigint.Int, error) {
	if s == "" {
		return nil, errorf("parse", "%w: empty %s", ErrInvalidKey, field)
	}
	x, err := k.kern.ParseInt(s, 16)
	switch {
	case err == nil:
		return x, nil
	case field == "n":
		return nil, errorf("parse", "%w: n: %v", ErrInvalidKey, err)
	default:
		// the parse error quotes its input
		return nil, errorf("parse", "%w: %s is not hex", ErrInvalidKey, field)
	}
}

func parseExponent(s string) (uint32, error) {
	if s == "" {
		return 0, errorf("parse", "%w: empty e", ErrInvalidKey)
	}
	e, err := strconv.ParseUint(s, 16, 32)
	if err != nil || e == 0 {
		return 0, errorf("parse", "%w: e %q", ErrInvalidKey, s)
	}
	return uint32(e), nil
}

// parsePublic parses n and e, rejecting a non-positive modulus.
func (k *Key) parsePublic(n, e string) (*bigint.Int, uint32, error) {
	nv, err := k.parseHex("n", n)
	if err != nil {
		return nil, 0, err
	}
	if nv.Sign() <= 0 {
		return nil, 0, errorf("parse", "%w: n must be positive", ErrInvalidKey)
	}
	ev, err := parseExponent(e)
	if err != nil {
		return nil, 0, err
	}
	return nv, ev, nil
}

// SetPublic sets n and e from hex strings and clears any private fields. On
// failure the key is left unchanged.
func (k *Key) SetPublic(n, e string) error {
	nv, ev, err := k.parsePublic(n, e)
	if err != nil {
		k.log.Warn(context.Background(), "invalid RSA public key", "error", err)
		return err
	}
	k.clear()
	k.n, k.e = nv, ev
	return nil
}

// SetPrivate sets n, e and d from hex strings and clears the CRT fields. On
// failure the key is left unchanged.
func (k *Key) SetPrivate(n, e, d string) error {
	nv, ev, err := k.parsePublic(n, e)
	if err != nil {
		k.log.Warn(context.Background(), "invalid RSA private key", "error", err)
		return err
	}
	dv, err := k.parseHex("d", d)
	if err != nil {
		k.log.Warn(context.Background(), "invalid RSA private key", "error", err, logging.Redacted("d"))
		return err
	}
	k.clear()
	k.n, k.e, k.d = nv, ev, dv
	return nil
}

// SetPrivateEx sets every key field from hex strings. On failure the key is
// left unchanged.
func (k *Key) SetPrivateEx(n, e, d, p, q, dp, dq, qinv string) error {
	nv, ev, err := k.parsePublic(n, e)
	if err != nil {
		k.log.Warn(context.Background(), "invalid RSA private key", "error", err)
		return err
	}
	vals := make([]*bigint.Int, 6)
	for i, f := range []struct{ name, s string }{
		{"d", d}, {"p", p}, {"q", q}, {"dp", dp}, {"dq", dq}, {"qinv", qinv},
	} {
		if vals[i], err = k.parseHex(f.name, f.s); err != nil {
			k.log.Warn(context.Background(), "invalid RSA private key", "error", err, logging.Redacted(f.name))
			return err
		}
	}
	for i, name := range []string{"p", "q"} {
		if vals[i+1].Sign() <= 0 {
			err = errorf("parse", "%w: %s must be positive", ErrInvalidKey, name)
			k.log.Warn(context.Background(), "invalid RSA private key", "error", err)
			return err
		}
	}
	k.clear()
	k.n, k.e = nv, ev
	k.d, k.p, k.q, k.dmp1, k.dmq1, k.coeff = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	return nil
}

func (k *Key) clear() {
	k.n, k.e = nil, 0
	k.d, k.p, k.q, k.dmp1, k.dmq1, k.coeff = nil, nil, nil, nil, nil, nil
}

// Validate checks the relations between the private fields: n = p*q,
// d*e = 1 mod (p-1)(q-1), dp = d mod (p-1), dq = d mod (q-1) and
// qinv*q = 1 mod p. A public-only key is valid when n is set.
func (k *Key) Validate() error {
	if k.n == nil {
		return &Error{Op: "Validate", Err: ErrNoPublicKey}
	}
	if !k.HasCRT() {
		return nil
	}
	one := k.kern.NewInt(1)
	p1, q1 := k.p.Sub(one), k.q.Sub(one)
	phi := p1.Mul(q1)
	if !k.p.Mul(k.q).Equal(k.n) {
		return errorf("Validate", "%w: n != p*q", ErrInvalidKey)
	}
	if p1.Sign() <= 0 || q1.Sign() <= 0 {
		return errorf("Validate", "%w: p and q must exceed 1", ErrInvalidKey)
	}
	de, err := k.d.Mul(k.kern.NewInt(int64(k.e))).Mod(phi)
	if err != nil || !de.Equal(one) {
		return errorf("Validate", "%w: d is not the inverse of e", ErrInvalidKey)
	}
	checks := []struct {
		name   string
		got    *bigint.Int
		x, mod *bigint.Int
	}{
		{"dp", k.dmp1, k.d, p1},
		{"dq", k.dmq1, k.d, q1},
	}
	for _, c := range checks {
		want, err := c.x.Mod(c.mod)
		if err != nil || !want.Equal(c.got) {
			return errorf("Validate", "%w: %s mismatch", ErrInvalidKey, c.name)
		}
	}
	cq, err := k.coeff.Mul(k.q).Mod(k.p)
	if err != nil || !cq.Equal(one) {
		return errorf("Validate", "%w: qinv mismatch", ErrInvalidKey)
	}
	return nil
}
