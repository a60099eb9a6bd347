// Package afisnet identifies people from fingerprint minutiae against a catalog of known
// records and exposes the associate network derived from that catalog.
//
// A Service owns the record store and the relationship graph built from it. Every insert
// rebuilds the graph before the Service is used again, so traversals never see a graph
// older than the catalog.
package afisnet
