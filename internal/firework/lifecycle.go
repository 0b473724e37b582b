package firework

// cull disposes every system past its deadline.
func (e *Engine) cull() {
	for i := 0; i < len(e.systems); {
		if e.systems[i].Expired() {
			e.dispose(i)
			e.stats.Expired++
			continue
		}
		i++
	}
}

// enforceCap evicts the oldest systems until at most max remain.
func (e *Engine) enforceCap(max int) {
	for len(e.systems) > max {
		s := e.systems[0]
		e.dispose(0)
		e.stats.Evicted++
		if e.opts.OnEvict != nil {
			e.opts.OnEvict(s)
		}
	}
}

// Dispose removes s from the scene and the registry. Unknown or already
// disposed systems are ignored.
func (e *Engine) Dispose(s *System) {
	for i, live := range e.systems {
		if live == s {
			e.dispose(i)
			return
		}
	}
}

func (e *Engine) dispose(i int) {
	s := e.systems[i]
	for _, o := range s.Objects() {
		if o == nil {
			continue
		}
		e.scene.Remove(o)
		o.Dispose()
	}
	s.points, s.halo, s.trail, s.flash = nil, nil, nil, nil

	copy(e.systems[i:], e.systems[i+1:])
	e.systems[len(e.systems)-1] = nil
	e.systems = e.systems[:len(e.systems)-1]
}
