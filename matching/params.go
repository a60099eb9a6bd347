// Package matching scores minutia sets against each other and identifies the best
// catalog record for a sample.
//
// Both scorers produce a dissimilarity in [0,1]: 0 for a perfect correspondence, 1 for
// none. Correspondences are taken greedily in input order; a sample point or zone pairs
// with the first qualifying counterpart, not the closest one.
package matching

import (
	"fmt"
	"strings"

	"github.com/jtejido/afisnet/config"
)

type Algorithm int

const (
	GraphBased Algorithm = iota + 1
	ZonalBased
)

func (a Algorithm) String() string {
	switch a {
	case GraphBased:
		return "graph"
	case ZonalBased:
		return "zonal"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm accepts the names printed by String as well as the menu numbers 1 and 2.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "graph", "graph-based", "1":
		return GraphBased, nil
	case "zonal", "zonal-based", "2":
		return ZonalBased, nil
	}
	return 0, fmt.Errorf("unknown matching algorithm %q", s)
}

// Params are the tolerances shared by both scorers.
type Params struct {
	MaxDistance     float64
	MaxAngle        float64
	ZoneSize        int
	MaxZones        int
	ZoneReach       float64
	ConfidenceClamp float64
}

func DefaultParams() Params {
	return ParamsFrom(config.Default().Matching)
}

func ParamsFrom(m config.Matching) Params {
	return Params{
		MaxDistance:     m.MaxDistance,
		MaxAngle:        m.MaxAngle,
		ZoneSize:        m.ZoneSize,
		MaxZones:        m.MaxZones,
		ZoneReach:       m.ZoneReach,
		ConfidenceClamp: m.ConfidenceClamp,
	}
}
