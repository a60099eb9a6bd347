// Package catalog owns the known-print records and the stores that persist them.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jtejido/afisnet/primitives"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record id already exists")
	ErrInvalid     = errors.New("invalid record")
)

// Record is a catalog entry: a person, the minutiae of their print, and the ids of the
// records they are known to associate with.
type Record struct {
	ID         int                  `json:"id" cbor:"1,keyasint"`
	Name       string               `json:"name" cbor:"2,keyasint"`
	Points     []primitives.Minutia `json:"points" cbor:"3,keyasint"`
	Associates []int                `json:"associates,omitempty" cbor:"4,keyasint,omitempty"`
}

func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalid, r.ID)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(r.Points) == 0 {
		return fmt.Errorf("%w: at least one minutia is required", ErrInvalid)
	}
	for i, p := range r.Points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: point %d: %v", ErrInvalid, i+1, err)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	r.Points = slices.Clone(r.Points)
	r.Associates = slices.Clone(r.Associates)
	return r
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

func duplicate(id int) error {
	return fmt.Errorf("%w: %d", ErrDuplicateID, id)
}
