// Package profile holds the selectable profiles and the stored profile list.
package profile

// Profile is a named context under which metrics are tracked.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

var defaults = []Profile{
	{ID: "sri", Name: "Sri", Tag: "Default profile"},
	{ID: "focus", Name: "Deep Focus", Tag: "Workday protocol"},
	{ID: "recovery", Name: "Recovery", Tag: "Low-load days"},
}

// Registry is an immutable, ordered list of profiles.
type Registry struct {
	profiles []Profile
}

// DefaultRegistry returns the built-in profiles.
func DefaultRegistry() *Registry {
	return NewRegistry(defaults)
}

// NewRegistry copies profiles into a registry. An empty list falls back to
// the built-in profiles so Resolve always has an answer.
func NewRegistry(profiles []Profile) *Registry {
	if len(profiles) == 0 {
		profiles = defaults
	}
	cp := make([]Profile, len(profiles))
	copy(cp, profiles)
	return &Registry{profiles: cp}
}

func (r *Registry) All() []Profile {
	cp := make([]Profile, len(r.profiles))
	copy(cp, r.profiles)
	return cp
}

func (r *Registry) Lookup(id string) (Profile, bool) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Resolve returns the profile for id, or the first profile when unknown.
func (r *Registry) Resolve(id string) Profile {
	if p, ok := r.Lookup(id); ok {
		return p
	}
	return r.profiles[0]
}

// Next returns the profile after id, wrapping around.
func (r *Registry) Next(id string) Profile {
	return r.profiles[(r.index(id)+1)%len(r.profiles)]
}

// Prev returns the profile before id, wrapping around.
func (r *Registry) Prev(id string) Profile {
	n := len(r.profiles)
	return r.profiles[(r.index(id)-1+n)%n]
}

func (r *Registry) index(id string) int {
	for i, p := range r.profiles {
		if p.ID == id {
			return i
		}
	}
	return 0
}
