package profile

import (
	"context"

	"codeberg.org/mutker/bodymind/internal/storage"
)

// Stored is the profile list kept under the "profiles" key. The dashboard
// does not read it; it exists for the profiles command.
type Stored struct {
	storage storage.Storage
}

func NewStored(s storage.Storage) *Stored {
	return &Stored{storage: s}
}

// List returns the stored profiles. Absent or unreadable content is an
// empty list. Entries without an id are dropped.
func (s *Stored) List(ctx context.Context) []Profile {
	raw := storage.Load(ctx, s.storage, storage.KeyProfiles, []Profile{})

	out := make([]Profile, 0, len(raw))
	for _, p := range raw {
		if p.ID != "" {
			out = append(out, p)
		}
	}
	return out
}

// Replace overwrites the stored list.
func (s *Stored) Replace(ctx context.Context, profiles []Profile) error {
	if profiles == nil {
		profiles = []Profile{}
	}
	return storage.Save(ctx, s.storage, storage.KeyProfiles, profiles)
}
