package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation of Repository. It is
// mutex-guarded because the HTTP server shares one instance across requests.
type MemoryRepository struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewMemoryRepository creates a new in-memory plan repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{plans: make(map[string]Plan)}
}

// Create stores a new plan snapshot.
func (r *MemoryRepository) Create(p Plan) (Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p = normalize(p)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	r.plans[p.ID] = p
	return p, nil
}

// Get returns the plan with the given ID.
func (r *MemoryRepository) Get(id string) (Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	return p, nil
}

// List returns all plans ordered by creation time, then name.
func (r *MemoryRepository) List() ([]Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].Name < plans[j].Name
	})
	return plans, nil
}

// Update replaces an existing plan snapshot.
func (r *MemoryRepository) Update(p Plan) (Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.plans[p.ID]
	if !ok {
		return Plan{}, ErrNotFound
	}

	p = normalize(p)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.plans[p.ID] = p
	return p, nil
}

// Delete removes a plan snapshot.
func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrNotFound
	}
	delete(r.plans, id)
	return nil
}
