package main

import (
	"testing"

	"gopkg.in/yaml.v3"

	"planet-eval.io/planeteval/internal/domain"
)

func TestPlanetFixtures_ParseAndValidate(t *testing.T) {
	t.Parallel()

	var fixtures struct {
		Planets []planetFixture `yaml:"planets"`
	}
	if err := yaml.Unmarshal(planetFixtures, &fixtures); err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	if len(fixtures.Planets) == 0 {
		t.Fatal("fixture file contains no planets")
	}

	seen := make(map[string]bool, len(fixtures.Planets))
	for _, f := range fixtures.Planets {
		if seen[f.Name] {
			t.Fatalf("duplicate fixture planet: %s", f.Name)
		}
		seen[f.Name] = true

		p := f.toDomain()
		if err := p.Validate(); err != nil {
			t.Fatalf("fixture %q invalid: %v", f.Name, err)
		}
	}
}

func TestDefaultUsers_CoversEveryRole(t *testing.T) {
	t.Parallel()

	users := defaultUsers()
	if len(users) != 4 {
		t.Fatalf("defaultUsers count = %d, want 4", len(users))
	}

	byRole := make(map[domain.Role]defaultUser, len(users))
	byName := make(map[string]bool, len(users))
	for _, u := range users {
		if byName[u.Username] {
			t.Fatalf("duplicate username: %s", u.Username)
		}
		byName[u.Username] = true
		byRole[u.Role] = u
	}

	for _, role := range []domain.Role{
		domain.RoleSuperAdmin,
		domain.RolePlanetAdmin,
		domain.RoleViewer1,
		domain.RoleViewer2,
	} {
		if _, ok := byRole[role]; !ok {
			t.Fatalf("no default user for role %s", role)
		}
	}

	if len(byRole[domain.RolePlanetAdmin].AssignedPlanetIDs) == 0 {
		t.Fatal("planetadmin default user has no assigned planets")
	}
	if len(byRole[domain.RoleViewer1].AssignedPlanetIDs) != 0 {
		t.Fatal("viewer accounts must not carry explicit assignments")
	}
}
