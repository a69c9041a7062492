package recommend

import "fmt"

// Engine computes health scores, eligibility decisions and product
// recommendations over a read-only profile set and product catalog.
type Engine struct {
	catalog  Catalog
	profiles map[string]Profile
}

// NewEngine returns an Engine over the given catalog and profiles.
func NewEngine(catalog Catalog, profiles []Profile) *Engine {
	byID := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return &Engine{
		catalog:  catalog,
		profiles: byID,
	}
}

// Profile returns the profile for the given customer ID.
func (e *Engine) Profile(customerID string) (Profile, error) {
	p, ok := e.profiles[customerID]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return p, nil
}
