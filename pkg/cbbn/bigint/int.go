package bigint

import (
	"math/bits"
)

// Int is a signed arbitrary-precision integer stored as a two's-complement
// digit vector: t significant limbs, least significant first, followed by an
// implicit infinite run of sign limbs (all zeros when s == 0, all ones when
// s == -1).
//
// The representation is kept clamped: the top significant limb never equals
// the sign limb. Methods that return an *Int never modify the receiver or
// their arguments.
//
// The zero value is the integer 0 on the Default kernel.
type Int struct {
	k *Kernel
	d []Word
	t int
	s int
}

func (k *Kernel) nbi() *Int { return &Int{k: k} }

// nbv returns a new Int set to v, -Base <= v < Base.
func (k *Kernel) nbv(v int64) *Int {
	r := k.nbi()
	r.fromInt(v)
	return r
}

// NewInt returns a new Int on k set to v.
func (k *Kernel) NewInt(v int64) *Int {
	if v > -int64(k.dv) && v < int64(k.dv) {
		return k.nbv(v)
	}

	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	r := k.nbi()
	for mag != 0 {
		r.grow(r.t + 1)
		r.d[r.t] = Word(mag) & k.dm
		r.t++
		mag >>= k.db
	}
	if neg {
		k.zero.subTo(r, r)
	}
	return r
}

// NewInt returns a new Int on the Default kernel set to v.
func NewInt(v int64) *Int {
	return Default().NewInt(v)
}

// Zero returns a new Int on the Default kernel set to 0.
func Zero() *Int { return Default().nbv(0) }

// One returns a new Int on the Default kernel set to 1.
func One() *Int { return Default().nbv(1) }

func (x *Int) kern() *Kernel {
	if x.k == nil {
		x.k = Default()
	}
	return x.k
}

// Kernel returns the kernel x is built on.
func (x *Int) Kernel() *Kernel { return x.kern() }

// grow makes room for n limbs, preserving the current contents. Limbs beyond
// t keep whatever was last written there; the in-place algorithms rely on it.
func (x *Int) grow(n int) {
	if len(x.d) >= n {
		return
	}
	if cap(x.d) >= n {
		x.d = x.d[:n]
		return
	}
	d := make([]Word, n, n+n/2+4)
	copy(d, x.d)
	x.d = d
}

// fromInt sets x to v, -Base <= v < Base.
func (x *Int) fromInt(v int64) {
	k := x.kern()
	x.grow(1)
	x.t = 1
	x.s = 0
	if v < 0 {
		x.s = -1
	}
	switch {
	case v > 0:
		x.d[0] = Word(v)
	case v < -1:
		x.d[0] = Word(v + int64(k.dv))
	default:
		x.t = 0
	}
}

// copyTo sets r to x.
func (x *Int) copyTo(r *Int) {
	if r == x {
		return
	}
	r.k = x.kern()
	r.grow(x.t)
	copy(r.d[:x.t], x.d[:x.t])
	r.t = x.t
	r.s = x.s
}

// clamp drops high limbs that merely repeat the sign.
func (x *Int) clamp() {
	c := Word(x.s) & x.kern().dm
	for x.t > 0 && x.d[x.t-1] == c {
		x.t--
	}
}

// adopt returns a with its limbs in k's width, re-encoding it when it was
// built on a different kernel.
func (k *Kernel) adopt(a *Int) *Int {
	if a.kern() == k {
		return a
	}
	return k.FromBytes(a.Bytes())
}

// Clone returns a copy of x.
func (x *Int) Clone() *Int {
	r := x.kern().nbi()
	x.copyTo(r)
	return r
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	k := x.kern()
	r := k.nbi()
	k.zero.subTo(x, r)
	return r
}

// Abs returns |x|. A non-negative x is returned as is.
func (x *Int) Abs() *Int {
	if x.s < 0 {
		return x.Neg()
	}
	return x
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	y = x.kern().adopt(y)
	c := x.compareTo(y)
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

func (x *Int) compareTo(a *Int) int {
	if r := x.s - a.s; r != 0 {
		return r
	}
	i := x.t
	if r := i - a.t; r != 0 {
		// equal signs: a longer negative value is smaller
		if x.s < 0 {
			return -r
		}
		return r
	}
	for i--; i >= 0; i-- {
		if x.d[i] != a.d[i] {
			if x.d[i] > a.d[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Equal reports whether x == y.
func (x *Int) Equal(y *Int) bool { return x.Cmp(y) == 0 }

// Min returns the smaller of x and y.
func (x *Int) Min(y *Int) *Int {
	if x.Cmp(y) < 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func (x *Int) Max(y *Int) *Int {
	if x.Cmp(y) > 0 {
		return x
	}
	return y
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case x.s < 0:
		return -1
	case x.t <= 0:
		return 0
	default:
		return 1
	}
}

// nbits returns the bit length of a non-zero limb; it reports 1 for zero.
func nbits(w Word) int {
	if w == 0 {
		return 1
	}
	return bits.Len32(uint32(w))
}

// BitLen returns the number of bits needed to represent x in two's
// complement, excluding the sign bit.
func (x *Int) BitLen() int {
	if x.t <= 0 {
		return 0
	}
	k := x.kern()
	return int(k.db)*(x.t-1) + nbits(x.d[x.t-1]^(Word(x.s)&k.dm))
}

func (x *Int) isEven() bool {
	if x.t > 0 {
		return x.d[0]&1 == 0
	}
	return x.s == 0
}

// Int32 returns the low 32 bits of x as a signed value.
func (x *Int) Int32() int32 {
	k := x.kern()
	if x.s < 0 {
		switch x.t {
		case 1:
			return int32(int64(x.d[0]) - int64(k.dv))
		case 0:
			return -1
		}
	} else {
		switch x.t {
		case 1:
			return int32(x.d[0])
		case 0:
			return 0
		}
	}
	return int32(uint32(x.d[1]&(Word(1)<<(32-k.db)-1))<<k.db | uint32(x.d[0]))
}

// Int16 returns the low 16 bits of x as a signed value.
func (x *Int) Int16() int16 {
	if x.t == 0 {
		return int16(x.s)
	}
	return int16(x.d[0])
}

// Int8 returns the low 8 bits of x as a signed value.
func (x *Int) Int8() int8 {
	if x.t == 0 {
		return int8(x.s)
	}
	return int8(x.d[0])
}
