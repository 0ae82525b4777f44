package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// User represents an authenticated identity plus its authorization facts.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `json:"role"`

	// AssignedPlanetIDs is the explicit grant set for assignment-based
	// roles. The storage layer persists it as a JSON-encoded array on the
	// user row; in memory it is always a typed set.
	AssignedPlanetIDs PlanetIDSet `json:"assigned_planet_ids"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// PlanetIDSet is a set of planet ids.
type PlanetIDSet map[int]struct{}

// NewPlanetIDSet builds a set from ids.
func NewPlanetIDSet(ids ...int) PlanetIDSet {
	s := make(PlanetIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports set membership. Safe on a nil set.
func (s PlanetIDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts an id.
func (s PlanetIDSet) Add(id int) {
	s[id] = struct{}{}
}

// Remove deletes an id. Safe on a nil set.
func (s PlanetIDSet) Remove(id int) {
	delete(s, id)
}

// Sorted returns the ids in ascending order.
func (s PlanetIDSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s PlanetIDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *PlanetIDSet) UnmarshalJSON(b []byte) error {
	var ids []int
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewPlanetIDSet(ids...)
	return nil
}

// DecodeAssignedPlanetIDs parses the stored JSON-encoded assignment list.
// Malformed or empty payloads degrade to the empty set instead of
// propagating a parse error: a user with an unreadable grant list behaves
// exactly like a user with no grants.
func DecodeAssignedPlanetIDs(raw string) PlanetIDSet {
	if raw == "" {
		return PlanetIDSet{}
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return PlanetIDSet{}
	}
	return NewPlanetIDSet(ids...)
}

// EncodeAssignedPlanetIDs serializes the set for storage.
func EncodeAssignedPlanetIDs(s PlanetIDSet) string {
	b, err := json.Marshal(s.Sorted())
	if err != nil {
		return "[]"
	}
	return string(b)
}
