package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/matching"
	"github.com/jtejido/afisnet/network"
	"github.com/jtejido/afisnet/primitives"
)

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func printRecord(p *printer, r catalog.Record) {
	p.header("RECORD DETAILS #%d", r.ID)
	associates := "None"
	if len(r.Associates) > 0 {
		associates = joinInts(r.Associates)
	}
	p.block(renderTable("", []string{"Field", "Value"}, [][]string{
		{"Name", r.Name},
		{"Fingerprint points", strconv.Itoa(len(r.Points))},
		{"Associates", associates},
	}, nil))

	rows := make([][]string, len(r.Points))
	for i, m := range r.Points {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			string(m.Kind.Code()),
			strconv.Itoa(m.X),
			strconv.Itoa(m.Y),
			strconv.Itoa(m.Angle),
			strconv.FormatFloat(m.Aux(), 'f', 2, 64),
		}
	}
	p.block(renderTable("Minutiae", []string{"#", "Type", "X", "Y", "Angle", "Orientation"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}))
}

func printRecordList(p *printer, records []catalog.Record) {
	if len(records) == 0 {
		p.warn("Catalog is empty.")
		return
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{strconv.Itoa(r.ID), r.Name, strconv.Itoa(len(r.Points)), joinInts(r.Associates)}
	}
	p.block(renderTable("", []string{"ID", "Name", "Points", "Associates"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
}

func printMatch(p *printer, res matching.MatchResult, sample []primitives.Minutia) {
	p.header("FINGERPRINT MATCH RESULT")
	p.block(renderTable("", []string{"Match", "Confidence", "Method"}, [][]string{{
		fmt.Sprintf("Record #%d (%s)", res.RecordID, res.Name),
		fmt.Sprintf("%.2f%%", res.Confidence),
		res.Algorithm.String(),
	}}, nil))

	p.header("DETAILED ANALYSIS")
	p.block(renderTable("", []string{"Measure", "Count"}, [][]string{
		{"Ridge endings matched", strconv.Itoa(res.RidgeMatches)},
		{"Bifurcations matched", strconv.Itoa(res.BifurcationMatches)},
		{"Total minutiae points", strconv.Itoa(len(sample))},
	}, []columnAlignment{alignLeft, alignRight}))

	var counts []string
	for i, m := range sample {
		if m.Kind == primitives.RidgeEnding && m.RidgeCount != 0 {
			counts = append(counts, fmt.Sprintf("- Point %d: %g", i+1, m.RidgeCount))
		}
	}
	if len(counts) > 0 {
		p.info("Ridge counts from reference:")
		p.block(strings.Join(counts, "\n"))
	}
}

func edgeLabel(e network.Edge) string {
	if e.Known {
		return fmt.Sprintf("[%d] %s (degree %d)", e.To, e.Name, e.Degree)
	}
	return fmt.Sprintf("[%d] (degree %d)", e.To, e.Degree)
}

func printTraversal(p *printer, t network.Traversal) {
	p.header("FULL NETWORK FOR #%d (%s)", t.Start, t.Visits[0].Name)
	rows := make([][]string, len(t.Visits))
	for i, v := range t.Visits {
		targets := make([]string, len(v.Edges))
		for j, e := range v.Edges {
			targets[j] = edgeLabel(e)
		}
		rows[i] = []string{strconv.Itoa(v.ID), v.Name, strconv.Itoa(v.Degree), strings.Join(targets, "\n")}
	}
	p.block(renderTable("", []string{"ID", "Name", "Degree", "Connected to"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))

	p.info("Network summary:")
	p.block(fmt.Sprintf("- Total records in network: %d\n- Maximum degree of separation: %d", t.Visited, t.MaxDegree))
}

func printAdjacency(p *printer, adj network.Adjacency) {
	p.header("ADJACENCY LIST FOR #%d (%s)", adj.ID, adj.Name)
	if len(adj.Edges) == 0 {
		p.warn("No connections found for this record.")
		return
	}
	rows := make([][]string, len(adj.Edges))
	for i, e := range adj.Edges {
		rows[i] = []string{strconv.Itoa(adj.ID), strconv.Itoa(e.To), e.Name}
	}
	p.block(renderTable("", []string{"From", "To", "Name"}, rows,
		[]columnAlignment{alignRight, alignRight, alignLeft}))
}
