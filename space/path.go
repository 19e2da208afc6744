package space

// Path is a fine-grained polyline obtained by traversing consecutive waypoints.
type Path struct {
	States   []State
	Complete bool
}

// ExpandPath re-traverses every consecutive waypoint pair and concatenates
// the motions, dropping the duplicated junction states. It stops at the
// first partial or failed edge; the prefix built so far is returned
// (with the edge's error, if any).
func ExpandPath(sp StateSpace, waypoints []State) (Path, error) {
	if len(waypoints) == 0 {
		return Path{}, ErrEmptyPath
	}
	p := Path{States: []State{waypoints[0].Clone()}}
	for i := 1; i < len(waypoints); i++ {
		m, err := sp.Traverse(waypoints[i-1], waypoints[i])
		if len(m.States) > 1 {
			p.States = append(p.States, m.States[1:]...)
		}
		if err != nil {
			return p, err
		}
		if !m.Complete {
			return p, nil
		}
	}
	p.Complete = true

	return p, nil
}

// Summary reports the statistics a path exporter prints.
type Summary struct {
	Length          float64
	States          int
	Complete        bool
	Charts          int     // atlas only
	FrontierPercent float64 // atlas only
}

// Summarize measures p in sp. Length is the sum of consecutive Distance values.
func Summarize(sp StateSpace, p Path) Summary {
	s := Summary{States: len(p.States), Complete: p.Complete}
	for i := 1; i < len(p.States); i++ {
		s.Length += sp.Distance(p.States[i-1], p.States[i])
	}
	if as, ok := sp.(*AtlasSpace); ok {
		s.Charts = as.atlas.ChartCount()
		s.FrontierPercent = as.atlas.EstimateFrontierPercent()
	}

	return s
}
