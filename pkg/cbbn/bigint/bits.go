package bigint

import "math/bits"

// dlShiftTo sets r = x << (n*DigitBits). r may alias x.
func (x *Int) dlShiftTo(n int, r *Int) {
	r.k = x.kern()
	if x.t == 0 {
		r.t, r.s = 0, x.s
		return
	}
	r.grow(x.t + n)
	xd, rd := x.d, r.d
	for i := x.t - 1; i >= 0; i-- {
		rd[i+n] = xd[i]
	}
	for i := n - 1; i >= 0; i-- {
		rd[i] = 0
	}
	r.t = x.t + n
	r.s = x.s
}

// drShiftTo sets r = x >> (n*DigitBits). r may alias x.
func (x *Int) drShiftTo(n int, r *Int) {
	r.k = x.kern()
	if x.t <= n {
		r.t, r.s = 0, x.s
		return
	}
	r.grow(x.t - n)
	xd, rd := x.d, r.d
	for i := n; i < x.t; i++ {
		rd[i-n] = xd[i]
	}
	r.t = x.t - n
	r.s = x.s
}

// lShiftTo sets r = x << n for n >= 0. r may alias x.
func (x *Int) lShiftTo(n int, r *Int) {
	k := x.kern()
	db := int(k.db)
	bs := n % db
	cbs := db - bs
	bm := Word(1)<<cbs - 1
	ds := n / db
	c := Word(x.s<<bs) & k.dm

	r.k = k
	r.grow(x.t + ds + 1)
	xd, rd := x.d, r.d
	for i := x.t - 1; i >= 0; i-- {
		rd[i+ds+1] = xd[i]>>cbs | c
		c = (xd[i] & bm) << bs
	}
	for i := ds - 1; i >= 0; i-- {
		rd[i] = 0
	}
	rd[ds] = c
	r.t = x.t + ds + 1
	r.s = x.s
	r.clamp()
}

// rShiftTo sets r = x >> n for n >= 0, rounding toward negative infinity.
// r may alias x.
func (x *Int) rShiftTo(n int, r *Int) {
	k := x.kern()
	r.k = k
	r.s = x.s
	db := int(k.db)
	ds := n / db
	if ds >= x.t {
		r.t = 0
		return
	}
	bs := n % db
	cbs := db - bs
	bm := Word(1)<<bs - 1

	r.grow(x.t - ds)
	xd, rd := x.d, r.d
	rd[0] = xd[ds] >> bs
	for i := ds + 1; i < x.t; i++ {
		rd[i-ds-1] |= (xd[i] & bm) << cbs
		rd[i-ds] = xd[i] >> bs
	}
	if bs > 0 {
		rd[x.t-ds-1] |= (Word(x.s) & bm) << cbs
	}
	r.t = x.t - ds
	r.clamp()
}

type bitOp func(x, y Word) Word

func opAnd(x, y Word) Word    { return x & y }
func opOr(x, y Word) Word     { return x | y }
func opXor(x, y Word) Word    { return x ^ y }
func opAndNot(x, y Word) Word { return x &^ y }

// bitwiseTo sets r = x op a with both operands sign-extended to infinity.
// r may alias x or a.
func (x *Int) bitwiseTo(a *Int, op bitOp, r *Int) {
	k := x.kern()
	r.k = k
	r.grow(max(a.t, x.t))
	xd, ad, rd := x.d, a.d, r.d

	m := min(a.t, x.t)
	for i := 0; i < m; i++ {
		rd[i] = op(xd[i], ad[i])
	}
	if a.t < x.t {
		f := Word(a.s) & k.dm
		for i := m; i < x.t; i++ {
			rd[i] = op(xd[i], f)
		}
		r.t = x.t
	} else {
		f := Word(x.s) & k.dm
		for i := m; i < a.t; i++ {
			rd[i] = op(f, ad[i])
		}
		r.t = a.t
	}
	if op(Word(x.s), Word(a.s)) != 0 {
		r.s = -1
	} else {
		r.s = 0
	}
	r.clamp()
}

func (x *Int) bitwise(y *Int, op bitOp) *Int {
	k := x.kern()
	r := k.nbi()
	x.bitwiseTo(k.adopt(y), op, r)
	return r
}

// And returns x & y.
func (x *Int) And(y *Int) *Int { return x.bitwise(y, opAnd) }

// Or returns x | y.
func (x *Int) Or(y *Int) *Int { return x.bitwise(y, opOr) }

// Xor returns x ^ y.
func (x *Int) Xor(y *Int) *Int { return x.bitwise(y, opXor) }

// AndNot returns x &^ y.
func (x *Int) AndNot(y *Int) *Int { return x.bitwise(y, opAndNot) }

// Not returns ^x, which equals -x-1.
func (x *Int) Not() *Int {
	k := x.kern()
	r := k.nbi()
	r.grow(x.t)
	for i := 0; i < x.t; i++ {
		r.d[i] = k.dm &^ x.d[i]
	}
	r.t = x.t
	r.s = ^x.s
	return r
}

// Lsh returns x << n. A negative n shifts right.
func (x *Int) Lsh(n int) *Int {
	r := x.kern().nbi()
	if n < 0 {
		x.rShiftTo(-n, r)
	} else {
		x.lShiftTo(n, r)
	}
	return r
}

// Rsh returns x >> n, rounding toward negative infinity. A negative n shifts
// left.
func (x *Int) Rsh(n int) *Int {
	r := x.kern().nbi()
	if n < 0 {
		x.lShiftTo(-n, r)
	} else {
		x.rShiftTo(n, r)
	}
	return r
}

// LowestSetBit returns the index of the lowest set bit of x, or -1 if x is 0.
func (x *Int) LowestSetBit() int {
	db := int(x.kern().db)
	for i := 0; i < x.t; i++ {
		if x.d[i] != 0 {
			return i*db + bits.TrailingZeros32(uint32(x.d[i]))
		}
	}
	if x.s < 0 {
		return x.t * db
	}
	return -1
}

// BitCount returns the number of bits of x that differ from its sign bit.
func (x *Int) BitCount() int {
	k := x.kern()
	f := Word(x.s) & k.dm
	r := 0
	for i := 0; i < x.t; i++ {
		r += bits.OnesCount32(uint32(x.d[i] ^ f))
	}
	return r
}

// TestBit reports whether bit n of x is set in two's complement.
func (x *Int) TestBit(n int) bool {
	if n < 0 {
		return false
	}
	db := int(x.kern().db)
	j := n / db
	if j >= x.t {
		return x.s != 0
	}
	return x.d[j]&(Word(1)<<(n%db)) != 0
}

func (x *Int) changeBit(n int, op bitOp) *Int {
	r := x.kern().one.Lsh(n)
	x.bitwiseTo(r, op, r)
	return r
}

// SetBit returns x | 1<<n.
func (x *Int) SetBit(n int) *Int { return x.changeBit(n, opOr) }

// ClearBit returns x &^ 1<<n.
func (x *Int) ClearBit(n int) *Int { return x.changeBit(n, opAndNot) }

// FlipBit returns x ^ 1<<n.
func (x *Int) FlipBit(n int) *Int { return x.changeBit(n, opXor) }
