package main

import (
	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/matching"
)

type PointRequest struct {
	Kind  string  `json:"kind"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Angle int     `json:"angle"`
	Aux   float64 `json:"aux"`
}

type IdentifyRequest struct {
	Algorithm string         `json:"algorithm"`
	Points    []PointRequest `json:"points"`
}

type RidgeCount struct {
	Point int     `json:"point"`
	Count float64 `json:"count"`
}

type IdentifyResponse struct {
	Match       bool                  `json:"is_match"`
	Algorithm   string                `json:"algorithm"`
	Result      *matching.MatchResult `json:"result,omitempty"`
	Confidence  string                `json:"confidence,omitempty"`
	Points      int                   `json:"points"`
	RidgeCounts []RidgeCount          `json:"ridge_counts,omitempty"`
	Message     string                `json:"message"`
	Elapsed     string                `json:"elapsed"`
}

type RecordRequest struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Points     []PointRequest `json:"points"`
	Associates []int          `json:"associates"`
}

type RecordSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Associates []int  `json:"associates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func summarize(r catalog.Record) RecordSummary {
	associates := r.Associates
	if associates == nil {
		associates = []int{}
	}
	return RecordSummary{ID: r.ID, Name: r.Name, Points: len(r.Points), Associates: associates}
}
