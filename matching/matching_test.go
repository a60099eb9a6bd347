package matching

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ridge(x, y, angle int) primitives.Minutia {
	return primitives.Minutia{X: x, Y: y, Angle: angle, Kind: primitives.RidgeEnding}
}

func bif(x, y, angle int) primitives.Minutia {
	return primitives.Minutia{X: x, Y: y, Angle: angle, Kind: primitives.Bifurcation}
}

func randomPrint(rng *rand.Rand, n int) []primitives.Minutia {
	points := make([]primitives.Minutia, n)
	for i := range points {
		points[i] = primitives.Minutia{
			X:           rng.Intn(500),
			Y:           rng.Intn(500),
			Angle:       rng.Intn(360),
			Kind:        primitives.Kind(rng.Intn(2)),
			Orientation: rng.Float64(),
		}
	}
	return points
}

func TestGraphSelfMatch(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		points := randomPrint(rng, 1+rng.Intn(40))
		g := p.Graph(points, points)
		require.Equal(t, 0.0, g.Score)
		require.Equal(t, len(points), g.Matches())
	}
}

func TestGraphDisjointKinds(t *testing.T) {
	p := DefaultParams()
	sample := []primitives.Minutia{ridge(0, 0, 10), ridge(50, 50, 90)}
	candidate := []primitives.Minutia{bif(0, 0, 10), bif(50, 50, 90)}
	g := p.Graph(sample, candidate)
	assert.Equal(t, 1.0, g.Score)
	assert.Zero(t, g.Matches())
}

func TestGraphTolerances(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		name      string
		candidate primitives.Minutia
		match     bool
	}{
		{"exact", ridge(100, 100, 45), true},
		{"distance at limit", ridge(106, 108, 45), true},
		{"distance over limit", ridge(111, 100, 45), false},
		{"angle at limit", ridge(100, 100, 65), true},
		{"angle over limit", ridge(100, 100, 66), false},
		{"angle wraps", primitives.Minutia{X: 100, Y: 100, Angle: 355, Kind: primitives.RidgeEnding}, false},
	}
	sample := []primitives.Minutia{ridge(100, 100, 45)}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := p.Graph(sample, []primitives.Minutia{tc.candidate})
			assert.Equal(t, tc.match, g.Matches() == 1)
		})
	}

	wrap := p.Graph([]primitives.Minutia{ridge(0, 0, 5)}, []primitives.Minutia{ridge(0, 0, 350)})
	assert.Equal(t, 1, wrap.RidgeMatches)
}

func TestGraphCountsEachSamplePointOnce(t *testing.T) {
	p := DefaultParams()
	sample := []primitives.Minutia{ridge(0, 0, 0), bif(20, 20, 0)}
	candidate := []primitives.Minutia{ridge(1, 0, 0), ridge(2, 0, 0), bif(20, 21, 0), bif(20, 22, 0)}
	g := p.Graph(sample, candidate)
	assert.Equal(t, 1, g.RidgeMatches)
	assert.Equal(t, 1, g.BifurcationMatches)
	assert.Equal(t, 0.5, g.Score)
}

func TestGraphCandidatePointsAreReusable(t *testing.T) {
	p := DefaultParams()
	sample := []primitives.Minutia{ridge(0, 0, 0), ridge(1, 1, 0)}
	g := p.Graph(sample, []primitives.Minutia{ridge(0, 0, 0)})
	assert.Equal(t, 2, g.RidgeMatches)
	assert.Equal(t, 0.0, g.Score)
}

func TestGraphEmpty(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.0, p.Graph(nil, nil).Score)
	assert.Equal(t, 1.0, p.Graph([]primitives.Minutia{ridge(0, 0, 0)}, nil).Score)
}

func TestZonal(t *testing.T) {
	p := DefaultParams()

	t.Run("Identical", func(t *testing.T) {
		points := []primitives.Minutia{
			{X: 10, Y: 10, Kind: primitives.RidgeEnding, Orientation: 0.2},
			{X: 20, Y: 15, Kind: primitives.Bifurcation, Orientation: 0.4},
			{X: 30, Y: 40, Kind: primitives.RidgeEnding, Orientation: 0.6},
			{X: 310, Y: 10, Kind: primitives.Bifurcation, Orientation: 0.9},
			{X: 320, Y: 30, Kind: primitives.RidgeEnding, Orientation: 0.1},
		}
		assert.InDelta(t, 0.0, p.Zonal(points, points), 1e-12)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		sample := []primitives.Minutia{ridge(0, 0, 0)}
		candidate := []primitives.Minutia{ridge(1000, 1000, 0)}
		assert.Equal(t, 1.0, p.Zonal(sample, candidate))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 1.0, p.Zonal(nil, []primitives.Minutia{ridge(0, 0, 0)}))
		assert.Equal(t, 1.0, p.Zonal([]primitives.Minutia{ridge(0, 0, 0)}, nil))
	})

	t.Run("CountRatio", func(t *testing.T) {
		sample := []primitives.Minutia{
			{X: 0, Y: 0, Kind: primitives.Bifurcation, Orientation: 0.5},
			{X: 10, Y: 10, Kind: primitives.Bifurcation, Orientation: 0.5},
		}
		candidate := []primitives.Minutia{{X: 5, Y: 5, Kind: primitives.Bifurcation, Orientation: 0.5}}
		assert.InDelta(t, 0.5, p.Zonal(sample, candidate), 1e-12)
	})

	t.Run("OrientationDelta", func(t *testing.T) {
		sample := []primitives.Minutia{{X: 0, Y: 0, Kind: primitives.RidgeEnding, RidgeCount: 90}}
		candidate := []primitives.Minutia{{X: 0, Y: 0, Kind: primitives.RidgeEnding}}
		assert.InDelta(t, 0.5, p.Zonal(sample, candidate), 1e-12)
	})

	t.Run("FirstZoneWithinReach", func(t *testing.T) {
		// sample zone centered at (50,50); candidate zones at (150,50) and (50,50), the
		// farther one is denser and therefore ordered first
		sample := []primitives.Minutia{{X: 0, Y: 0, Kind: primitives.Bifurcation, Orientation: 0}}
		candidate := []primitives.Minutia{
			{X: 100, Y: 0, Kind: primitives.Bifurcation, Orientation: 0},
			{X: 110, Y: 0, Kind: primitives.Bifurcation, Orientation: 0},
			{X: 0, Y: 0, Kind: primitives.Bifurcation, Orientation: 0},
		}
		assert.InDelta(t, 0.5, p.Zonal(sample, candidate), 1e-12)
	})
}

func TestIdentifyTieBreaksOnLowestID(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "first", Points: []primitives.Minutia{ridge(0, 0, 10)}},
		{ID: 2, Name: "second", Points: []primitives.Minutia{ridge(5, 0, 15)}},
	}
	sample := []primitives.Minutia{ridge(3, 0, 12)}

	id := NewIdentifier(DefaultParams())
	res, ok := id.Identify(records, sample, GraphBased)
	require.True(t, ok)
	assert.Equal(t, 1, res.RecordID)
	assert.Equal(t, "first", res.Name)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 100.0, res.Confidence)
	assert.Equal(t, 1, res.RidgeMatches)
	assert.Zero(t, res.BifurcationMatches)
}

func TestIdentifyPicksLowestScore(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "partial", Points: []primitives.Minutia{ridge(0, 0, 10), ridge(300, 300, 10)}},
		{ID: 2, Name: "full", Points: []primitives.Minutia{ridge(0, 0, 10), bif(50, 50, 100)}},
		{ID: 3, Name: "none", Points: []primitives.Minutia{bif(400, 0, 0)}},
	}
	sample := []primitives.Minutia{ridge(1, 1, 12), bif(52, 49, 95)}

	res, ok := NewIdentifier(DefaultParams()).Identify(records, sample, GraphBased)
	require.True(t, ok)
	assert.Equal(t, 2, res.RecordID)
	assert.Equal(t, 1, res.RidgeMatches)
	assert.Equal(t, 1, res.BifurcationMatches)
	assert.Equal(t, GraphBased, res.Algorithm)
}

func TestIdentifyZonal(t *testing.T) {
	records := []catalog.Record{
		{ID: 4, Name: "far", Points: []primitives.Minutia{ridge(900, 900, 0)}},
		{ID: 5, Name: "near", Points: []primitives.Minutia{ridge(0, 0, 0), ridge(10, 10, 0)}},
	}
	sample := []primitives.Minutia{ridge(5, 5, 0), ridge(6, 6, 0)}

	res, ok := NewIdentifier(DefaultParams()).Identify(records, sample, ZonalBased)
	require.True(t, ok)
	assert.Equal(t, 5, res.RecordID)
	assert.Zero(t, res.RidgeMatches)
	assert.Equal(t, 100.0, res.Confidence)
}

func TestIdentifyZonalExtremeCoordinates(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "origin", Points: []primitives.Minutia{ridge(0, 0, 0)}},
		{ID: 2, Name: "edge", Points: []primitives.Minutia{ridge(math.MaxInt-3, math.MaxInt, 0)}},
	}
	sample := []primitives.Minutia{ridge(math.MaxInt-10, math.MaxInt-1, 0)}

	res, ok := NewIdentifier(DefaultParams()).Identify(records, sample, ZonalBased)
	require.True(t, ok)
	assert.Equal(t, 2, res.RecordID)
}

func TestIdentifyNoMatch(t *testing.T) {
	id := NewIdentifier(DefaultParams())
	sample := []primitives.Minutia{ridge(0, 0, 0)}

	_, ok := id.Identify(nil, sample, GraphBased)
	assert.False(t, ok)

	records := []catalog.Record{{ID: 1, Name: "far", Points: []primitives.Minutia{ridge(800, 800, 0)}}}
	_, ok = id.Identify(records, sample, GraphBased)
	assert.False(t, ok)
	_, ok = id.Identify(records, sample, ZonalBased)
	assert.False(t, ok)
}

func TestConfidenceClamp(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 100.0, p.Confidence(0))
	assert.Equal(t, 100.0, p.Confidence(0.00004))
	assert.InDelta(t, 99.99, p.Confidence(0.0001), 1e-9)
	assert.InDelta(t, 25.0, p.Confidence(0.75), 1e-9)
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{"graph": GraphBased, "1": GraphBased, "Zonal": ZonalBased, "2": ZonalBased} {
		got, err := ParseAlgorithm(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAlgorithm("3")
	assert.Error(t, err)
}
