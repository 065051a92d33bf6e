package dnd

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// ClosestCenter picks the drop target whose center is nearest the dragged
// rect's center, among targets the dragged rect overlaps. Falls back to the
// globally nearest center when nothing overlaps, and returns "" when there
// are no targets at all.
func ClosestCenter(active Rect, targets map[NodeID]Rect) NodeID {
	best := NodeID("")
	bestDist := -1.0
	overlapping := false

	for id, rect := range targets {
		over := active.overlaps(rect)
		if overlapping && !over {
			continue
		}
		d := dist(active.Center(), rect.Center())
		if over && !overlapping {
			// first overlapping target trumps any non-overlapping best
			overlapping = true
			best, bestDist = id, d
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}
