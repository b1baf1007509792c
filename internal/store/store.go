// Package store persists named plan snapshots. The engine itself stays
// stateless; a Repository is injected wherever saved plans are needed.
package store

import (
	"errors"
	"time"

	"homeplan/pkg/plan"
)

// ErrNotFound is returned when no plan exists under the requested ID.
var ErrNotFound = errors.New("plan not found")

// Plan is one saved snapshot of project inputs, keyed by an opaque ID.
type Plan struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	CreatedAt time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"updatedAt"`
	Inputs    plan.Inputs `json:"inputs" yaml:"inputs"`
}

// Repository stores plan snapshots. Implementations must return the stored
// snapshot verbatim so a replayed plan produces identical derived figures.
type Repository interface {
	// Create stores a new plan. A missing ID is assigned; a missing name
	// falls back to the project name of the inputs.
	Create(p Plan) (Plan, error)

	// Get returns the plan with the given ID or ErrNotFound.
	Get(id string) (Plan, error)

	// List returns all plans ordered by creation time.
	List() ([]Plan, error)

	// Update replaces the named plan or returns ErrNotFound.
	Update(p Plan) (Plan, error)

	// Delete removes the plan or returns ErrNotFound.
	Delete(id string) error
}

func normalize(p Plan) Plan {
	if p.Name == "" {
		p.Name = p.Inputs.ProjectName
	}
	return p
}
