package main

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jtejido/afisnet"
	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/primitives"
)

func toMinutiae(points []PointRequest) ([]primitives.Minutia, error) {
	out := make([]primitives.Minutia, 0, len(points))
	for i, p := range points {
		kind, err := primitives.ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		m := primitives.Minutia{X: p.X, Y: p.Y, Angle: p.Angle, Kind: kind}
		if kind == primitives.RidgeEnding {
			m.RidgeCount = p.Aux
		} else {
			m.Orientation = p.Aux
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// toRecord keeps catalog aux values as orientations regardless of kind.
func toRecord(req RecordRequest) (catalog.Record, error) {
	points, err := toMinutiae(req.Points)
	if err != nil {
		return catalog.Record{}, err
	}
	for i := range points {
		points[i] = points[i].Catalogued()
	}
	return catalog.Record{ID: req.ID, Name: req.Name, Points: points, Associates: req.Associates}, nil
}

func ridgeCounts(sample []primitives.Minutia) []RidgeCount {
	var out []RidgeCount
	for i, m := range sample {
		if m.Kind == primitives.RidgeEnding && m.RidgeCount != 0 {
			out = append(out, RidgeCount{Point: i + 1, Count: m.RidgeCount})
		}
	}
	return out
}

func httpError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrDuplicateID):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, primitives.ErrInvalidPoint),
		errors.Is(err, afisnet.ErrEmptySample):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func paramID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid record id: "+c.Params("id"))
	}
	return id, nil
}
