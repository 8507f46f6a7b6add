package bigint

// push appends one limb above the current top.
func (x *Int) push(w Word) {
	x.grow(x.t + 1)
	x.d[x.t] = w
	x.t++
}

// addTo sets r = x + a. r may alias x or a.
func (x *Int) addTo(a, r *Int) {
	k := x.kern()
	r.k = k
	r.grow(max(a.t, x.t) + 1)
	xd, ad, rd := x.d, a.d, r.d

	var c int64
	i, m := 0, min(a.t, x.t)
	for i < m {
		c += int64(xd[i]) + int64(ad[i])
		rd[i] = Word(c) & k.dm
		i++
		c >>= k.db
	}
	if a.t < x.t {
		c += int64(a.s)
		for i < x.t {
			c += int64(xd[i])
			rd[i] = Word(c) & k.dm
			i++
			c >>= k.db
		}
		c += int64(x.s)
	} else {
		c += int64(x.s)
		for i < a.t {
			c += int64(ad[i])
			rd[i] = Word(c) & k.dm
			i++
			c >>= k.db
		}
		c += int64(a.s)
	}

	r.s = 0
	if c < 0 {
		r.s = -1
	}
	if c > 0 {
		rd[i] = Word(c)
		i++
	} else if c < -1 {
		rd[i] = Word(int64(k.dv) + c)
		i++
	}
	r.t = i
	r.clamp()
}

// subTo sets r = x - a. r may alias x or a.
func (x *Int) subTo(a, r *Int) {
	k := x.kern()
	r.k = k
	r.grow(max(a.t, x.t) + 1)
	xd, ad, rd := x.d, a.d, r.d

	var c int64
	i, m := 0, min(a.t, x.t)
	for i < m {
		c += int64(xd[i]) - int64(ad[i])
		rd[i] = Word(c) & k.dm
		i++
		c >>= k.db
	}
	if a.t < x.t {
		c -= int64(a.s)
		for i < x.t {
			c += int64(xd[i])
			rd[i] = Word(c) & k.dm
			i++
			c >>= k.db
		}
		c += int64(x.s)
	} else {
		c += int64(x.s)
		for i < a.t {
			c -= int64(ad[i])
			rd[i] = Word(c) & k.dm
			i++
			c >>= k.db
		}
		c -= int64(a.s)
	}

	r.s = 0
	if c < 0 {
		r.s = -1
	}
	if c < -1 {
		rd[i] = Word(int64(k.dv) + c)
		i++
	} else if c > 0 {
		rd[i] = Word(c)
		i++
	}
	r.t = i
	r.clamp()
}

// multiplyTo sets r = x * a (HAC 14.12). r must not alias x or a.
func (x *Int) multiplyTo(a, r *Int) {
	k := x.kern()
	xa, ya := x.Abs(), a.Abs()

	r.k = k
	r.grow(xa.t + ya.t)
	rd := r.d
	r.t = xa.t + ya.t
	for i := 0; i < xa.t; i++ {
		rd[i] = 0
	}
	for i := 0; i < ya.t; i++ {
		rd[i+xa.t] = k.am(xa.d, 0, ya.d[i], rd, i, 0, xa.t)
	}
	r.s = 0
	r.clamp()
	if x.s != a.s {
		k.zero.subTo(r, r)
	}
}

// squareTo sets r = x^2 (HAC 14.16). r must not alias x.
func (x *Int) squareTo(r *Int) {
	k := x.kern()
	xa := x.Abs()
	xd := xa.d

	r.k = k
	r.grow(2 * xa.t)
	rd := r.d
	r.t = 2 * xa.t
	for i := 0; i < r.t; i++ {
		rd[i] = 0
	}

	i := 0
	for ; i < xa.t-1; i++ {
		c := k.am(xd, i, xd[i], rd, 2*i, 0, 1)
		v := uint64(rd[i+xa.t]) + uint64(k.am(xd, i+1, 2*xd[i], rd, 2*i+1, c, xa.t-i-1))
		if v >= uint64(k.dv) {
			v -= uint64(k.dv)
			rd[i+xa.t+1] = 1
		}
		rd[i+xa.t] = Word(v)
	}
	if r.t > 0 {
		rd[r.t-1] += k.am(xd, i, xd[i], rd, 2*i, 0, 1)
	}
	r.s = 0
	r.clamp()
}

// dMultiply sets x = x * n for x >= 0 and 1 < n < Base.
func (x *Int) dMultiply(n Word) {
	x.grow(x.t + 1)
	x.d[x.t] = x.kern().am(x.d, 0, n-1, x.d, 0, 0, x.t)
	x.t++
	x.clamp()
}

// dAddOffset sets x = x + n<<(w*DigitBits) for x >= 0.
func (x *Int) dAddOffset(n Word, w int) {
	if n == 0 {
		return
	}
	dv := uint64(x.kern().dv)
	for x.t <= w {
		x.push(0)
	}
	v := uint64(x.d[w]) + uint64(n)
	for v >= dv {
		x.d[w] = Word(v - dv)
		w++
		if w >= x.t {
			x.push(0)
		}
		v = uint64(x.d[w]) + 1
	}
	x.d[w] = Word(v)
}

// multiplyLowerTo sets r to the lower n limbs of x*a, with x, a >= 0 and
// a.t <= n.
func (x *Int) multiplyLowerTo(a *Int, n int, r *Int) {
	k := x.kern()
	i := min(x.t+a.t, n)
	r.k = k
	r.grow(max(i, n))
	rd := r.d
	r.s = 0
	r.t = i
	for i > 0 {
		i--
		rd[i] = 0
	}
	for j := r.t - x.t; i < j; i++ {
		rd[i+x.t] = k.am(x.d, 0, a.d[i], rd, i, 0, x.t)
	}
	for j := min(a.t, n); i < j; i++ {
		k.am(x.d, 0, a.d[i], rd, i, 0, n-i)
	}
	r.clamp()
}

// multiplyUpperTo sets r to x*a without its lower n limbs, n > 0, with
// x, a >= 0.
func (x *Int) multiplyUpperTo(a *Int, n int, r *Int) {
	k := x.kern()
	n--
	i := max(x.t+a.t-n, 0)
	r.k = k
	r.grow(i)
	rd := r.d
	r.t = i
	r.s = 0
	for i--; i >= 0; i-- {
		rd[i] = 0
	}
	for i = max(n-x.t, 0); i < a.t; i++ {
		rd[x.t+i-n] = k.am(x.d, n-i, a.d[i], rd, 0, 0, x.t+i-n)
	}
	r.clamp()
	r.drShiftTo(1, r)
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	k := x.kern()
	r := k.nbi()
	x.addTo(k.adopt(y), r)
	return r
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	k := x.kern()
	r := k.nbi()
	x.subTo(k.adopt(y), r)
	return r
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	k := x.kern()
	r := k.nbi()
	x.multiplyTo(k.adopt(y), r)
	return r
}

// Square returns x * x using the symmetric squaring routine.
func (x *Int) Square() *Int {
	r := x.kern().nbi()
	x.squareTo(r)
	return r
}
