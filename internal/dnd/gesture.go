package dnd

import "math"

type Point struct {
	X, Y float64
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

type EventType int

const (
	EventStart EventType = iota
	EventMove
	EventEnd
	EventCancel
)

// Event is a semantic drag event. Over is empty when the pointer is outside
// every drop target; an End with empty Over is emitted as a Cancel instead.
type Event struct {
	Type   EventType
	Active NodeID
	Over   NodeID
}

type phase int

const (
	phaseIdle phase = iota
	phasePressed
	phaseDragging
)

// Gesture is the per-pointer drag state machine. Gestures are strictly
// sequential: a pointer-down while another gesture is live is ignored.
type Gesture struct {
	threshold float64
	phase     phase
	origin    Point
	active    NodeID
}

// NewGesture builds a gesture machine. A press becomes a drag only after the
// pointer travels at least threshold from its origin.
func NewGesture(threshold float64) *Gesture {
	return &Gesture{threshold: threshold}
}

func (g *Gesture) Dragging() bool { return g.phase == phaseDragging }

// PointerDown arms the gesture on a draggable node.
func (g *Gesture) PointerDown(node NodeID, at Point) {
	if g.phase != phaseIdle {
		return
	}
	if node.Kind() != KindList && node.Kind() != KindCard {
		return
	}
	g.phase = phasePressed
	g.origin = at
	g.active = node
}

// PointerMove may activate the drag (crossing the threshold) or report the
// current drop target while dragging.
func (g *Gesture) PointerMove(at Point, over NodeID) (Event, bool) {
	switch g.phase {
	case phasePressed:
		if dist(g.origin, at) < g.threshold {
			return Event{}, false
		}
		g.phase = phaseDragging
		return Event{Type: EventStart, Active: g.active, Over: over}, true
	case phaseDragging:
		return Event{Type: EventMove, Active: g.active, Over: over}, true
	default:
		return Event{}, false
	}
}

// PointerUp completes the gesture. A release over no valid target cancels.
func (g *Gesture) PointerUp(over NodeID) (Event, bool) {
	defer g.reset()

	if g.phase != phaseDragging {
		return Event{}, false
	}
	if over == "" {
		return Event{Type: EventCancel, Active: g.active}, true
	}
	return Event{Type: EventEnd, Active: g.active, Over: over}, true
}

// Cancel aborts the gesture explicitly (e.g. Escape).
func (g *Gesture) Cancel() (Event, bool) {
	wasDragging := g.phase == phaseDragging
	active := g.active
	g.reset()

	if !wasDragging {
		return Event{}, false
	}
	return Event{Type: EventCancel, Active: active}, true
}

func (g *Gesture) reset() {
	g.phase = phaseIdle
	g.active = ""
	g.origin = Point{}
}
