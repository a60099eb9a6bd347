package matching

import (
	"github.com/jtejido/afisnet/primitives"
)

// GraphScore is the outcome of point-pair scoring.
type GraphScore struct {
	Score              float64
	RidgeMatches       int
	BifurcationMatches int
}

func (g GraphScore) Matches() int {
	return g.RidgeMatches + g.BifurcationMatches
}

// Graph pairs every sample point with the first candidate point of the same kind within
// MaxDistance and MaxAngle. The score is 1 - matches / max(|sample|, |candidate|), or 1
// when both sets are empty.
func (p Params) Graph(sample, candidate []primitives.Minutia) GraphScore {
	var g GraphScore
	for _, s := range sample {
		for _, c := range candidate {
			if s.Kind != c.Kind {
				continue
			}
			if primitives.Distance(s.X, s.Y, c.X, c.Y) > p.MaxDistance {
				continue
			}
			if float64(primitives.CircularDiff(s.Angle, c.Angle)) > p.MaxAngle {
				continue
			}
			if s.Kind == primitives.RidgeEnding {
				g.RidgeMatches++
			} else {
				g.BifurcationMatches++
			}
			break
		}
	}
	n := max(len(sample), len(candidate))
	if n == 0 {
		g.Score = 1
		return g
	}
	g.Score = 1 - float64(g.Matches())/float64(n)
	return g
}
