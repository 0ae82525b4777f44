// Package domain provides domain models for the Planet Evaluate service.
//
// Storage and transport layers convert to and from these types at their
// boundaries; nothing inside the core operates on raw database rows or DTOs.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Field limits enforced at the boundary.
const (
	MaxPlanetNameLen        = 100
	MaxPlanetTypeLen        = 50
	MaxPlanetDescriptionLen = 1000
)

// Planet represents a planet record. Identity is immutable; attributes are
// mutable. Optional physical attributes are pointers: the scoring engine
// treats an absent value as a defined default, never as an error.
type Planet struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// Type is a free-text classification, e.g. "Terrestrial" or "Gas Giant".
	Type *string `json:"type,omitempty"`

	Mass            *float64 `json:"mass,omitempty"`              // Earth masses
	Radius          *float64 `json:"radius,omitempty"`            // Earth radii
	DistanceFromSun *float64 `json:"distance_from_sun,omitempty"` // AU
	NumberOfMoons   *int     `json:"number_of_moons,omitempty"`

	HasAtmosphere bool     `json:"has_atmosphere"`
	OxygenVolume  *float64 `json:"oxygen_volume,omitempty"` // % of atmosphere, 0-100
	WaterVolume   *float64 `json:"water_volume,omitempty"`  // % of surface, 0-100

	HardnessOfRock      *int `json:"hardness_of_rock,omitempty"`     // 1-10, 1 softest
	ThreateningCreature *int `json:"threatening_creature,omitempty"` // 1-10, 1 lowest threat

	Description *string `json:"description,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"` // nil until first update
}

// Validate checks boundary invariants on a planet's attributes.
// Range enforcement happens here, not inside the scoring engine.
func (p *Planet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("planet name must not be empty")
	}
	if len(p.Name) > MaxPlanetNameLen {
		return fmt.Errorf("planet name exceeds %d characters", MaxPlanetNameLen)
	}
	if p.Type != nil && len(*p.Type) > MaxPlanetTypeLen {
		return fmt.Errorf("planet type exceeds %d characters", MaxPlanetTypeLen)
	}
	if p.Description != nil && len(*p.Description) > MaxPlanetDescriptionLen {
		return fmt.Errorf("planet description exceeds %d characters", MaxPlanetDescriptionLen)
	}
	if p.Mass != nil && *p.Mass < 0 {
		return fmt.Errorf("mass must be non-negative")
	}
	if p.Radius != nil && *p.Radius < 0 {
		return fmt.Errorf("radius must be non-negative")
	}
	if p.DistanceFromSun != nil && *p.DistanceFromSun < 0 {
		return fmt.Errorf("distance from sun must be non-negative")
	}
	if p.NumberOfMoons != nil && *p.NumberOfMoons < 0 {
		return fmt.Errorf("number of moons must be non-negative")
	}
	if err := percentInRange("oxygen volume", p.OxygenVolume); err != nil {
		return err
	}
	if err := percentInRange("water volume", p.WaterVolume); err != nil {
		return err
	}
	if err := scaleInRange("hardness of rock", p.HardnessOfRock); err != nil {
		return err
	}
	if err := scaleInRange("threatening creature", p.ThreateningCreature); err != nil {
		return err
	}
	return nil
}

func percentInRange(field string, v *float64) error {
	if v != nil && (*v < 0 || *v > 100) {
		return fmt.Errorf("%s must be between 0 and 100", field)
	}
	return nil
}

func scaleInRange(field string, v *int) error {
	if v != nil && (*v < 1 || *v > 10) {
		return fmt.Errorf("%s must be between 1 and 10", field)
	}
	return nil
}
