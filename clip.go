package polyclip

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// LineFragment is a maximal piece of an input line that survived clipping,
// with the index of the line it came from.
type LineFragment struct {
	Line       orb.LineString
	Provenance int
}

// Clip returns the parts of lines that lie inside the region covered by the
// polygon set. Fragments keep the direction and vertex order of their source
// line, and consecutive surviving segments of one line are joined.
func Clip(lines orb.MultiLineString, by orb.MultiPolygon) ([]LineFragment, error) {
	return clipLines(lines, by, false)
}

// ClipOutside returns the parts of lines that lie outside the region covered
// by the polygon set.
func ClipOutside(lines orb.MultiLineString, by orb.MultiPolygon) ([]LineFragment, error) {
	return clipLines(lines, by, true)
}

func clipLines(lines orb.MultiLineString, by orb.MultiPolygon, invert bool) ([]LineFragment, error) {
	if err := validateLines(0, lines); err != nil {
		return nil, err
	}
	if err := validatePolygons(1, by); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	// when the polygon cannot touch the lines, either everything or nothing
	// survives
	if polyEmpty(by) || !lines.Bound().Intersects(by.Bound()) {
		if !invert {
			return nil, nil
		}
		frags := make([]LineFragment, 0, len(lines))
		for i, line := range lines {
			if len(line) < 2 {
				continue
			}
			frags = append(frags, LineFragment{Line: line.Clone(), Provenance: i})
		}
		return frags, nil
	}

	queue := &SweepEvents{}
	segment := 0
	for i, line := range lines {
		segment = queue.AddLine(line, i, segment)
	}
	for _, poly := range by {
		for i, ring := range poly {
			segment = queue.AddRing(orientedRing(ring, 0 < i), subjectBit, segment)
		}
	}
	queue.Init()

	ordered, err := runSweep(queue, sweepConfig{clip: true, invert: invert})
	if err != nil {
		return nil, errors.Wrap(err, "clip")
	}
	return assembleLines(ordered), nil
}

// endKey identifies an open fragment end while chaining. Split points are
// shared between the pieces they produced, so exact comparison suffices.
type endKey struct {
	provenance int
	point      orb.Point
}

type openEnd struct {
	frag int
	tail bool
}

// assembleLines joins the surviving line segments back into maximal
// fragments. Segments arrive in sweep order, not path order, so fragments
// grow at both ends and may splice together when a segment bridges two of
// them.
func assembleLines(ordered []*SweepPoint) []LineFragment {
	var frags []orb.LineString
	var prov []int
	dead := map[int]bool{}
	ends := map[endKey]openEnd{}

	claim := func(k endKey, e openEnd) {
		// a key already taken by another fragment stays with it; the chain at
		// this end simply cannot be extended further
		if _, ok := ends[k]; !ok {
			ends[k] = e
		}
	}

	for _, e := range ordered {
		if !e.inResult || e.merged || !e.isLine || !e.left {
			continue
		}
		s, t := e.Start(), e.End()
		ks := endKey{e.provenance, s}
		kt := endKey{e.provenance, t}

		f, okF := ends[ks]
		okF = okF && f.tail // a fragment ending at s
		g, okG := ends[kt]
		okG = okG && !g.tail // a fragment starting at t

		switch {
		case okF && okG && f.frag == g.frag:
			// the segment closes the fragment into a loop
			frags[f.frag] = append(frags[f.frag], t)
			delete(ends, ks)
			delete(ends, kt)
		case okF && okG:
			// the segment bridges two fragments
			frags[f.frag] = append(frags[f.frag], frags[g.frag]...)
			delete(ends, ks)
			delete(ends, kt)
			gTail := endKey{e.provenance, frags[g.frag][len(frags[g.frag])-1]}
			if end, ok := ends[gTail]; ok && end.frag == g.frag {
				ends[gTail] = openEnd{frag: f.frag, tail: true}
			}
			dead[g.frag] = true
		case okF:
			frags[f.frag] = append(frags[f.frag], t)
			delete(ends, ks)
			claim(kt, openEnd{frag: f.frag, tail: true})
		case okG:
			frags[g.frag] = append(orb.LineString{s}, frags[g.frag]...)
			delete(ends, kt)
			claim(ks, openEnd{frag: g.frag, tail: false})
		default:
			frags = append(frags, orb.LineString{s, t})
			prov = append(prov, e.provenance)
			claim(ks, openEnd{frag: len(frags) - 1, tail: false})
			claim(kt, openEnd{frag: len(frags) - 1, tail: true})
		}
	}

	result := make([]LineFragment, 0, len(frags))
	for i, line := range frags {
		if dead[i] {
			continue
		}
		result = append(result, LineFragment{Line: line, Provenance: prov[i]})
	}
	return result
}
