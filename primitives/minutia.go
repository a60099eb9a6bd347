// Package primitives holds the minutia point model and the small numeric helpers the
// matchers share.
package primitives

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPoint is returned when a textual minutia fails validation.
var ErrInvalidPoint = errors.New("invalid minutia")

// Kind discriminates the two modeled minutia types.
type Kind uint8

const (
	RidgeEnding Kind = iota
	Bifurcation
)

func (k Kind) String() string {
	switch k {
	case RidgeEnding:
		return "ridge ending"
	case Bifurcation:
		return "bifurcation"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Code is the single-letter form used by text formats: R or B.
func (k Kind) Code() byte {
	if k == Bifurcation {
		return 'B'
	}
	return 'R'
}

func (k Kind) Valid() bool {
	return k == RidgeEnding || k == Bifurcation
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return RidgeEnding, nil
	case "B":
		return Bifurcation, nil
	}
	return 0, fmt.Errorf("%w: kind %q is neither R nor B", ErrInvalidPoint, s)
}

// Minutia is one ridge feature. Orientation is captured with catalog prints, RidgeCount
// with ridge endings of an identification sample.
type Minutia struct {
	X           int     `json:"x" cbor:"1,keyasint"`
	Y           int     `json:"y" cbor:"2,keyasint"`
	Angle       int     `json:"angle" cbor:"3,keyasint"`
	Kind        Kind    `json:"kind" cbor:"4,keyasint"`
	Orientation float64 `json:"orientation,omitempty" cbor:"5,keyasint,omitempty"`
	RidgeCount  float64 `json:"ridge_count,omitempty" cbor:"6,keyasint,omitempty"`
}

// Aux is the value zonal scoring averages per zone.
func (m Minutia) Aux() float64 {
	if m.Kind == RidgeEnding && m.RidgeCount != 0 {
		return m.RidgeCount
	}
	return m.Orientation
}

// Catalogued stores the auxiliary value as an orientation, the form catalog records keep.
func (m Minutia) Catalogued() Minutia {
	m.Orientation = m.Aux()
	m.RidgeCount = 0
	return m
}

func (m Minutia) Validate() error {
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidPoint, m.Kind)
	}
	if m.Angle < 0 || m.Angle >= 360 {
		return fmt.Errorf("%w: angle %d outside [0,360)", ErrInvalidPoint, m.Angle)
	}
	return nil
}

// ParseMinutia reads "K,x,y,angle[,aux]" where K is R or B. The optional aux value is a
// ridge count for ridge endings and an orientation for bifurcations.
func ParseMinutia(s string) (Minutia, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 4 || len(fields) > 5 {
		return Minutia{}, fmt.Errorf("%w: %q: want K,x,y,angle[,aux]", ErrInvalidPoint, s)
	}
	kind, err := ParseKind(fields[0])
	if err != nil {
		return Minutia{}, err
	}
	var ints [3]int
	for i, f := range fields[1:4] {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Minutia{}, fmt.Errorf("%w: %q: %v", ErrInvalidPoint, s, err)
		}
		ints[i] = v
	}
	m := Minutia{X: ints[0], Y: ints[1], Angle: ints[2], Kind: kind}
	if len(fields) == 5 {
		aux, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
		if err != nil {
			return Minutia{}, fmt.Errorf("%w: %q: %v", ErrInvalidPoint, s, err)
		}
		if kind == RidgeEnding {
			m.RidgeCount = aux
		} else {
			m.Orientation = aux
		}
	}
	return m, m.Validate()
}

// ParseMinutiae parses every entry and rejects an empty set.
func ParseMinutiae(entries []string) ([]Minutia, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one point is required", ErrInvalidPoint)
	}
	points := make([]Minutia, 0, len(entries))
	for _, e := range entries {
		m, err := ParseMinutia(e)
		if err != nil {
			return nil, err
		}
		points = append(points, m)
	}
	return points, nil
}
