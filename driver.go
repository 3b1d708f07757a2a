package rdf

// producer is implemented by each format's parser: it drives itself
// to completion, calling sink for every quad it emits, and returns the
// terminating error (nil on a clean end of input).
type producer interface {
	run(sink func(Quad)) error
}

// emissionDriver adapts a cooperative producer — one that calls
// emit(quad) from arbitrary call depth while running to completion —
// into the pull-based Next() sequence every decoder in this package
// exposes. It realizes the contract of §4.6 with a producer goroutine
// bounded by a 1-slot, unbuffered channel: the goroutine blocks on
// send until the consumer calls Next, so producer and consumer run in
// lockstep with no true parallelism, matching the single-threaded
// cooperative scheduling model every parser promises.
type emissionDriver struct {
	quads   chan Quad
	done    chan error
	started bool
	closed  bool
	err     error
	final   bool
}

func newEmissionDriver(p producer) *emissionDriver {
	d := &emissionDriver{
		quads: make(chan Quad),
		done:  make(chan error, 1),
	}
	go func() {
		err := p.run(func(q Quad) { d.quads <- q })
		d.done <- err
	}()
	d.started = true
	return d
}

// Next returns the next produced quad. ok is false at end of
// production; err is non-nil if production ended with a failure
// rather than a clean end of input. Calling Next again after ok is
// false and err is nil, or after a non-nil err, returns
// ErrAlreadyConsumed.
func (d *emissionDriver) Next() (Quad, bool, error) {
	if d.final {
		return Quad{}, false, ErrAlreadyConsumed
	}
	select {
	case q := <-d.quads:
		return q, true, nil
	case err := <-d.done:
		d.final = true
		d.err = err
		return Quad{}, false, err
	}
}

// Close abandons iteration before the producer reaches its own
// completion, releasing the goroutine. It is a no-op if the producer
// has already finished. Callers that do not iterate a decoder to
// completion must call Close to avoid leaking the producer goroutine,
// which is otherwise parked forever on an unconsumed emit.
func (d *emissionDriver) Close() {
	if d.final || d.closed {
		return
	}
	d.closed = true
	d.final = true
	go func() {
		for {
			select {
			case <-d.quads:
			case <-d.done:
				return
			}
		}
	}()
}
