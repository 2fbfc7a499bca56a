package jobs

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when a job id does not resolve to a spec.
var ErrNotFound = errors.New("job not found")

// Catalog is an in-memory set of job specs keyed by id.
type Catalog struct {
	mu    sync.RWMutex
	specs map[string]Spec
	order []string
}

// NewCatalog validates and stores the provided specs. Duplicate ids are rejected.
func NewCatalog(specs []Spec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]Spec, len(specs))}
	for _, spec := range specs {
		if _, exists := c.specs[spec.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", spec.ID)
		}
		if err := c.Save(spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns a copy of the spec with the given id.
func (c *Catalog) Get(id string) (Spec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	spec, ok := c.specs[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return clone(spec), nil
}

// List returns all specs in insertion order.
func (c *Catalog) List() []Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Spec, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.specs[id]))
	}
	return out
}

// Active returns specs with the Active status, sorted by title.
func (c *Catalog) Active() []Spec {
	var active []Spec
	for _, spec := range c.List() {
		if spec.Status == StatusActive {
			active = append(active, spec)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Title < active[j].Title })
	return active
}

// Save creates or replaces a spec after validating it.
func (c *Catalog) Save(spec Spec) error {
	if spec.Status == "" {
		spec.Status = StatusDraft
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.specs[spec.ID]; !exists {
		c.order = append(c.order, spec.ID)
	}
	c.specs[spec.ID] = clone(spec)
	return nil
}

// Delete removes a spec. Deleting an unknown id returns ErrNotFound.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.specs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(c.specs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(spec Spec) Spec {
	spec.RequiredSkills = append([]Skill(nil), spec.RequiredSkills...)
	spec.Responsibilities = append([]string(nil), spec.Responsibilities...)
	return spec
}
