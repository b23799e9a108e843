package input

import "slices"

type Kind int

const (
	Move Kind = iota
	Click
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Click:
		return "click"
	}
	return "unknown"
}

// Event is a pointer event already translated into surface-local coordinates.
type Event struct {
	Kind Kind
	X, Y float64
}

// Raw is a pointer event in device coordinates.
type Raw struct {
	Kind Kind
	X, Y float64
}

// Transform maps device coordinates onto the surface: local = (raw - offset) * scale.
type Transform struct {
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
}

func Identity() Transform { return Transform{ScaleX: 1, ScaleY: 1} }

func (t Transform) Apply(x, y float64) (float64, float64) {
	return (x - t.OffsetX) * t.ScaleX, (y - t.OffsetY) * t.ScaleY
}

type Handler func(Event)

// Subscription identifies one registered handler. The zero value is never issued.
type Subscription uint64

type entry struct {
	id      Subscription
	kind    Kind
	handler Handler
}

// Source is the pointer-event source of one surface. It is not safe for
// concurrent use; hosts deliver events on the same goroutine as frame ticks.
type Source struct {
	transform Transform
	next      Subscription
	entries   []entry
}

func NewSource(t Transform) *Source {
	return &Source{transform: t}
}

func (s *Source) SetTransform(t Transform) { s.transform = t }
func (s *Source) Transform() Transform     { return s.transform }

func (s *Source) On(kind Kind, h Handler) Subscription {
	s.next++
	s.entries = append(s.entries, entry{id: s.next, kind: kind, handler: h})
	return s.next
}

// Off removes a handler. It reports whether the subscription was live.
func (s *Source) Off(sub Subscription) bool {
	i := slices.IndexFunc(s.entries, func(e entry) bool { return e.id == sub })
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Live counts the handlers registered for kind.
func (s *Source) Live(kind Kind) int {
	n := 0
	for _, e := range s.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Emit translates raw and delivers it to every handler of its kind in
// registration order. It returns the number of handlers invoked.
func (s *Source) Emit(raw Raw) int {
	x, y := s.transform.Apply(raw.X, raw.Y)
	ev := Event{Kind: raw.Kind, X: x, Y: y}

	snapshot := slices.Clone(s.entries)
	n := 0
	for _, e := range snapshot {
		if e.kind != raw.Kind || !s.live(e.id) {
			continue
		}
		e.handler(ev)
		n++
	}
	return n
}

func (s *Source) live(id Subscription) bool {
	return slices.ContainsFunc(s.entries, func(e entry) bool { return e.id == id })
}
