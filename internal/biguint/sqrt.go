package biguint

// Sqrt sets z = floor(sqrt(x)).
//
// It binary-searches [0, 2^ceil(b/2)], b being the bit length of x, for the
// largest s with s*s <= x. Each step costs one multiplication and one
// comparison. Temporaries live on z's scope and are released before Sqrt
// returns; the root is swapped into z, so z may alias x.
func (z *Uint) Sqrt(x *Uint) (err error) {
	defer func() { err = z.finish("sqrt", err) }()
	if err := live(z, x); err != nil {
		return err
	}
	return z.sqrt(x)
}

func (z *Uint) sqrt(x *Uint) error {
	bits := x.bitLen()
	if bits == 0 {
		if err := z.resize(1); err != nil {
			return err
		}
		z.buf[0] = 0
		return nil
	}
	h := (bits + 1) / 2
	s := z.scope

	var temps []*Uint
	defer func() {
		for i := len(temps) - 1; i >= 0; i-- {
			temps[i].release()
		}
	}()
	newTemp := func(n int) (*Uint, error) {
		t, err := s.temp(n)
		if err == nil {
			temps = append(temps, t)
		}
		return t, err
	}

	lo, err := newTemp(1)
	if err != nil {
		return err
	}
	hi, err := newTemp(h/8 + 1)
	if err != nil {
		return err
	}
	hi.buf[h/8] = 1 << (h % 8)
	one, err := newTemp(1)
	if err != nil {
		return err
	}
	one.buf[0] = 1
	mid, err := newTemp(len(hi.buf) + 1)
	if err != nil {
		return err
	}
	sq, err := newTemp(2*len(hi.buf) + 2)
	if err != nil {
		return err
	}

	for lo.cmp(hi) < 0 {
		// mid = (lo + hi + 1) / 2 rounds up so the interval always shrinks.
		if err := mid.add(lo, hi); err != nil {
			return err
		}
		if err := mid.add(mid, one); err != nil {
			return err
		}
		if err := mid.shr(mid, 1); err != nil {
			return err
		}
		mid.trim()

		if err := sq.mul(mid, mid); err != nil {
			return err
		}
		sq.trim()

		if sq.cmp(x) <= 0 {
			lo.swap(mid)
		} else {
			if err := hi.sub(mid, one); err != nil {
				return err
			}
			hi.trim()
		}
	}

	z.swap(lo)
	return nil
}
