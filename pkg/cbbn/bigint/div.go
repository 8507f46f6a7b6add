package bigint

import "math"

// divRemTo divides x by m (HAC 14.20), storing the truncated quotient in q and
// the remainder, which takes the sign of x, in r. Either q or r may be nil. r
// may alias x; q must not alias m or r. A zero divisor leaves q and r
// untouched.
func (x *Int) divRemTo(m, q, r *Int) {
	k := x.kern()
	pm := m.Abs()
	pm.clamp()
	if pm.t <= 0 {
		return
	}
	pt := x.Abs()
	pt.clamp()
	if pt.t < pm.t {
		if r != nil {
			x.copyTo(r)
			r.clamp()
		}
		if q != nil {
			q.fromInt(0)
		}
		return
	}
	if r == nil {
		r = k.nbi()
	}
	y := k.nbi()
	ts, ms := x.s, m.s

	// normalize so the divisor's top limb has its high bit set
	nsh := int(k.db) - nbits(pm.d[pm.t-1])
	if nsh > 0 {
		pm.lShiftTo(nsh, y)
		pt.lShiftTo(nsh, r)
	} else {
		pm.copyTo(y)
		pt.copyTo(r)
	}
	ys := y.t

	y0 := y.d[ys-1]
	if y0 == 0 {
		return
	}
	yt := float64(y0) * float64(uint64(1)<<k.f1)
	if ys > 1 {
		yt += float64(y.d[ys-2] >> k.f2)
	}
	d1 := k.fv / yt
	d2 := float64(uint64(1)<<k.f1) / yt
	e := float64(uint64(1) << k.f2)

	i := r.t
	j := i - ys
	t := q
	if t == nil {
		t = k.nbi()
	}
	y.dlShiftTo(j, t)

	r.grow(r.t + 1)
	if r.compareTo(t) >= 0 {
		r.d[r.t] = 1
		r.t++
		r.subTo(t, r)
	}
	k.one.dlShiftTo(ys, t)
	t.subTo(y, y) // y = Base^ys - y, so the subtraction below is an am call
	for y.t < ys {
		y.push(0)
	}

	for j--; j >= 0; j-- {
		i--
		// estimate the quotient digit
		qd := k.dm
		if r.d[i] != y0 {
			qd = Word(math.Floor(float64(r.d[i])*d1 + (float64(r.d[i-1])+e)*d2))
		}
		v := uint64(r.d[i]) + uint64(k.am(y.d, 0, qd, r.d, j, 0, ys))
		r.d[i] = Word(v)
		if v < uint64(qd) {
			// estimate was too high; back off
			y.dlShiftTo(j, t)
			r.subTo(t, r)
			for qd--; r.d[i] < qd; qd-- {
				r.subTo(t, r)
			}
		}
	}

	if q != nil {
		r.drShiftTo(ys, q)
		if ts != ms {
			k.zero.subTo(q, q)
		}
	}
	r.t = ys
	r.clamp()
	if nsh > 0 {
		r.rShiftTo(nsh, r)
	}
	if ts < 0 {
		k.zero.subTo(r, r)
	}
}

// mod returns x mod a in [0, a) for a > 0.
func (x *Int) mod(a *Int) *Int {
	k := x.kern()
	r := k.nbi()
	x.Abs().divRemTo(a, nil, r)
	if x.s < 0 && r.compareTo(k.zero) > 0 {
		a.subTo(r, r)
	}
	return r
}

// modInt returns x mod n for 0 < n < 2^26.
func (x *Int) modInt(n int) int {
	if n <= 0 {
		return 0
	}
	nn := int64(n)
	d := int64(x.kern().dv) % nn
	var r int64
	if x.s < 0 {
		r = nn - 1
	}
	if x.t > 0 {
		if d == 0 {
			r = int64(x.d[0]) % nn
		} else {
			for i := x.t - 1; i >= 0; i-- {
				r = (d*r + int64(x.d[i])) % nn
			}
		}
	}
	return int(r)
}

// Div returns the quotient x/y truncated toward zero.
func (x *Int) Div(y *Int) (*Int, error) {
	q, _, err := x.DivRem(y)
	return q, err
}

// Rem returns the remainder x%y, which has the sign of x.
func (x *Int) Rem(y *Int) (*Int, error) {
	_, r, err := x.DivRem(y)
	return r, err
}

// DivRem returns the truncated quotient and the remainder of x/y, so that
// q*y + r == x and |r| < |y|.
func (x *Int) DivRem(y *Int) (q, r *Int, err error) {
	k := x.kern()
	y = k.adopt(y)
	if y.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q, r = k.nbi(), k.nbi()
	x.divRemTo(y, q, r)
	return q, r, nil
}

// Mod returns the Euclidean residue of x modulo m, in [0, m) for m > 0.
func (x *Int) Mod(m *Int) (*Int, error) {
	k := x.kern()
	m = k.adopt(m)
	if m.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return x.mod(m), nil
}
