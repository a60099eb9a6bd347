package matching

import (
	"github.com/jtejido/afisnet/primitives"
	"github.com/jtejido/afisnet/zoning"
)

// Zonal partitions both sets and pairs each sample zone with the first candidate zone whose
// center lies within ZoneReach*ZoneSize. Each pair contributes
// (1 - orientationDelta/180) * min(n1/n2, n2/n1); the score is one minus the mean
// contribution, or 1 when nothing pairs.
func (p Params) Zonal(sample, candidate []primitives.Minutia) float64 {
	if len(sample) == 0 || len(candidate) == 0 {
		return 1
	}
	sz, err := zoning.Partition(sample, p.ZoneSize, p.MaxZones)
	if err != nil {
		return 1
	}
	cz, err := zoning.Partition(candidate, p.ZoneSize, p.MaxZones)
	if err != nil {
		return 1
	}

	reach := p.ZoneReach * float64(p.ZoneSize)
	var total float64
	var compared int
	for _, a := range sz {
		for _, b := range cz {
			if primitives.Distance(a.CenterX, a.CenterY, b.CenterX, b.CenterY) > reach {
				continue
			}
			total += zoneSimilarity(a, b)
			compared++
			break
		}
	}
	if compared == 0 {
		return 1
	}
	return 1 - total/float64(compared)
}

func zoneSimilarity(a, b zoning.Zone) float64 {
	delta := primitives.CircularDiff(a.MeanOrientation, b.MeanOrientation)
	na, nb := float64(len(a.Members)), float64(len(b.Members))
	ratio := min(na/nb, nb/na)
	return (1 - delta/180) * ratio
}
