package matching

import (
	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/primitives"
)

type MatchResult struct {
	RecordID           int       `json:"record_id"`
	Name               string    `json:"name"`
	Algorithm          Algorithm `json:"-"`
	Score              float64   `json:"score"`
	Confidence         float64   `json:"confidence"`
	RidgeMatches       int       `json:"ridge_matches"`
	BifurcationMatches int       `json:"bifurcation_matches"`
}

type Identifier struct {
	params Params
}

func NewIdentifier(p Params) *Identifier {
	return &Identifier{params: p}
}

func (i *Identifier) Params() Params {
	return i.params
}

// Score compares sample against candidate with alg. Match tallies are only filled by
// GraphBased.
func (i *Identifier) Score(alg Algorithm, sample, candidate []primitives.Minutia) GraphScore {
	if alg == ZonalBased {
		return GraphScore{Score: i.params.Zonal(sample, candidate)}
	}
	return i.params.Graph(sample, candidate)
}

// Identify scans records in the order given, which must be ascending id, and keeps the
// lowest score. The first record wins a tie. It reports false when records is empty or no
// record corresponds to the sample at all.
func (i *Identifier) Identify(records []catalog.Record, sample []primitives.Minutia, alg Algorithm) (MatchResult, bool) {
	var best MatchResult
	found := false
	for _, r := range records {
		g := i.Score(alg, sample, r.Points)
		if found && g.Score >= best.Score {
			continue
		}
		best = MatchResult{
			RecordID:           r.ID,
			Name:               r.Name,
			Algorithm:          alg,
			Score:              g.Score,
			RidgeMatches:       g.RidgeMatches,
			BifurcationMatches: g.BifurcationMatches,
		}
		found = true
	}
	if !found || best.Score >= 1 {
		return MatchResult{}, false
	}
	best.Confidence = i.params.Confidence(best.Score)
	return best, true
}

// Confidence converts a dissimilarity into a percentage, absorbing rounding noise just
// below 100.
func (p Params) Confidence(score float64) float64 {
	c := 100 * (1 - score)
	if c > p.ConfidenceClamp {
		return 100
	}
	return c
}
