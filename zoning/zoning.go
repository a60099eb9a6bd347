// Package zoning groups a minutia set into fixed-size square cells for regional comparison.
package zoning

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/jtejido/afisnet/primitives"
)

var ErrEmptyInput = errors.New("zoning: empty point set")

// Zone is a non-empty cell of a partition. CenterX and CenterY are the cell's geometric
// center, not the centroid of its members.
type Zone struct {
	CenterX, CenterY int
	Members          []primitives.Minutia
	MeanOrientation  float64
}

// Partition tiles the bounding box of points into size x size cells anchored at the
// minimum corner, keeps the non-empty ones, and returns at most maxZones of them ordered
// by descending member count. Equal counts keep row-major cell order.
func Partition(points []primitives.Minutia, size, maxZones int) ([]Zone, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	if size <= 0 {
		return nil, fmt.Errorf("zoning: cell size %d must be positive", size)
	}
	minX, minY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX, minY = min(minX, p.X), min(minY, p.Y)
	}

	cells := treemap.NewWith(byRowThenColumn)
	for _, p := range points {
		k := cell{row: index(p.Y, minY, size), col: index(p.X, minX, size)}
		var b *bucket
		if v, ok := cells.Get(k); ok {
			b = v.(*bucket)
		} else {
			b = &bucket{Zone: Zone{CenterX: center(minX, k.col, size), CenterY: center(minY, k.row, size)}}
			cells.Put(k, b)
		}
		b.Members = append(b.Members, p)
		b.sum += p.Aux()
	}

	zones := make([]Zone, 0, cells.Size())
	for _, v := range cells.Values() {
		b := v.(*bucket)
		b.MeanOrientation = b.sum / float64(len(b.Members))
		zones = append(zones, b.Zone)
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return len(zones[i].Members) > len(zones[j].Members)
	})
	if len(zones) > maxZones {
		zones = zones[:maxZones]
	}
	return zones, nil
}

type cell struct {
	row, col uint64
}

type bucket struct {
	Zone
	sum float64
}

func byRowThenColumn(a, b interface{}) int {
	c1, c2 := a.(cell), b.(cell)
	if c1.row != c2.row {
		return cmp.Compare(c1.row, c2.row)
	}
	return cmp.Compare(c1.col, c2.col)
}

// index is the cell number of v counted from origin. v >= origin, so the offset always
// fits in a uint64 even when v-origin overflows int.
func index(v, origin, size int) uint64 {
	return (uint64(v) - uint64(origin)) / uint64(size)
}

// center is the midpoint of cell idx, saturated at math.MaxInt for cells at the top of
// the int range.
func center(origin int, idx uint64, size int) int {
	hi, off := bits.Mul64(idx, uint64(size))
	if hi != 0 {
		return math.MaxInt
	}
	off, carry := bits.Add64(off, uint64(size/2), 0)
	if carry != 0 || off > uint64(math.MaxInt)-uint64(origin) {
		return math.MaxInt
	}
	return int(uint64(origin) + off)
}
