package bigint

// GCD returns the non-negative greatest common divisor of x and y (HAC 14.54).
// GCD(0, 0) is 0.
func (x *Int) GCD(y *Int) *Int {
	k := x.kern()
	a := x.Abs().Clone()
	b := k.adopt(y).Abs().Clone()
	if a.compareTo(b) < 0 {
		a, b = b, a
	}
	i, g := a.LowestSetBit(), b.LowestSetBit()
	if g < 0 {
		return a
	}
	if i < g {
		g = i
	}
	if g > 0 {
		a.rShiftTo(g, a)
		b.rShiftTo(g, b)
	}
	for a.Sign() > 0 {
		if i = a.LowestSetBit(); i > 0 {
			a.rShiftTo(i, a)
		}
		if i = b.LowestSetBit(); i > 0 {
			b.rShiftTo(i, b)
		}
		if a.compareTo(b) >= 0 {
			a.subTo(b, a)
			a.rShiftTo(1, a)
		} else {
			b.subTo(a, b)
			b.rShiftTo(1, b)
		}
	}
	if g > 0 {
		b.lShiftTo(g, b)
	}
	return b
}

// ModInverse returns x^-1 mod m (HAC 14.61). When no inverse exists, because
// gcd(x, m) != 1 or m is 0, it returns 0.
func (x *Int) ModInverse(m *Int) *Int {
	k := x.kern()
	m = k.adopt(m)
	ac := m.isEven()
	if (x.isEven() && ac) || m.Sign() == 0 {
		return k.nbv(0)
	}
	u, v := m.Clone(), x.Clone()
	a, b, c, d := k.nbv(1), k.nbv(0), k.nbv(0), k.nbv(1)
	for u.Sign() != 0 {
		for u.isEven() {
			u.rShiftTo(1, u)
			if ac {
				if !a.isEven() || !b.isEven() {
					a.addTo(x, a)
					b.subTo(m, b)
				}
				a.rShiftTo(1, a)
			} else if !b.isEven() {
				b.subTo(m, b)
			}
			b.rShiftTo(1, b)
		}
		for v.isEven() {
			v.rShiftTo(1, v)
			if ac {
				if !c.isEven() || !d.isEven() {
					c.addTo(x, c)
					d.subTo(m, d)
				}
				c.rShiftTo(1, c)
			} else if !d.isEven() {
				d.subTo(m, d)
			}
			d.rShiftTo(1, d)
		}
		if u.compareTo(v) >= 0 {
			u.subTo(v, u)
			if ac {
				a.subTo(c, a)
			}
			b.subTo(d, b)
		} else {
			v.subTo(u, v)
			if ac {
				c.subTo(a, c)
			}
			d.subTo(b, d)
		}
	}
	if v.compareTo(k.one) != 0 {
		return k.nbv(0)
	}
	if d.compareTo(m) >= 0 {
		return d.Sub(m)
	}
	if d.Sign() >= 0 {
		return d
	}
	d.addTo(m, d)
	if d.Sign() < 0 {
		return d.Add(m)
	}
	return d
}

// invDigit returns -1/x mod Base for odd x, or 0 for even x. Montgomery
// reduction uses it to clear one limb per step.
func (x *Int) invDigit() Word {
	if x.t < 1 {
		return 0
	}
	v := uint64(x.d[0])
	if v&1 == 0 {
		return 0
	}
	k := x.kern()
	// Newton iteration, each step doubling the correct low bits: 2, 4, 8, 16, 32
	y := v & 3
	for i := 0; i < 4; i++ {
		y *= 2 - v*y
	}
	y &= uint64(k.dm)
	return Word(uint64(k.dv) - y)
}
