// Package access implements the role and assignment based planet access
// policy.
//
// Every decision is a pure function of the user's role, their assignment
// set, and (for unrestricted roles) the id universe supplied by the caller.
// Policy decisions never return errors: an absent or unknown user is simply
// unauthorized.
package access

import (
	"planet-eval.io/planeteval/internal/domain"
)

// RuleKind tags the access rule variants.
type RuleKind int

const (
	// RuleDeny grants nothing. The zero value, so unknown roles fail closed.
	RuleDeny RuleKind = iota
	// RuleUnrestricted grants every planet in the store.
	RuleUnrestricted
	// RuleFixedSet grants a fixed set of planet ids, ignoring assignments.
	RuleFixedSet
	// RuleAssignmentBased grants exactly the user's assigned planet ids.
	RuleAssignmentBased
)

// Rule is one tagged variant of the per-role access table.
type Rule struct {
	Kind RuleKind
	// Fixed holds the granted ids for RuleFixedSet; unused otherwise.
	Fixed domain.PlanetIDSet
}

// Deny returns the deny-all rule.
func Deny() Rule { return Rule{Kind: RuleDeny} }

// Unrestricted returns the grant-everything rule.
func Unrestricted() Rule { return Rule{Kind: RuleUnrestricted} }

// FixedSet returns a rule granting exactly the given ids.
func FixedSet(ids ...int) Rule {
	return Rule{Kind: RuleFixedSet, Fixed: domain.NewPlanetIDSet(ids...)}
}

// AssignmentBased returns a rule granting the user's assignment set.
func AssignmentBased() Rule { return Rule{Kind: RuleAssignmentBased} }

// Config tunes the parts of the policy the product has not settled.
type Config struct {
	// Viewer1PlanetIDs and Viewer2PlanetIDs are the fixed grant sets for the
	// numbered viewer roles. They apply only when ViewerFixedSets is true.
	Viewer1PlanetIDs []int
	Viewer2PlanetIDs []int

	// ViewerFixedSets selects between the two observed behaviors for the
	// numbered viewer roles: fixed sentinel id sets (true) or assignment
	// lookups like the generic viewer (false).
	ViewerFixedSets bool

	// PlanetAdminCanDelete widens delete permission from SuperAdmin-only to
	// also allow a PlanetAdmin to delete planets they are assigned to.
	PlanetAdminCanDelete bool
}

// DefaultConfig mirrors the currently shipped behavior: fixed viewer sets
// {1} and {1,3}, delete restricted to SuperAdmin.
func DefaultConfig() Config {
	return Config{
		Viewer1PlanetIDs: []int{1},
		Viewer2PlanetIDs: []int{1, 3},
		ViewerFixedSets:  true,
	}
}

// Policy is the compiled role -> rule table plus the delete scope.
type Policy struct {
	rules                map[domain.Role]Rule
	planetAdminCanDelete bool
}

// NewPolicy compiles a Config into a Policy.
func NewPolicy(cfg Config) *Policy {
	rules := map[domain.Role]Rule{
		domain.RoleSuperAdmin:  Unrestricted(),
		domain.RolePlanetAdmin: AssignmentBased(),
		domain.RoleViewer:      AssignmentBased(),
	}
	if cfg.ViewerFixedSets {
		rules[domain.RoleViewer1] = FixedSet(cfg.Viewer1PlanetIDs...)
		rules[domain.RoleViewer2] = FixedSet(cfg.Viewer2PlanetIDs...)
	} else {
		rules[domain.RoleViewer1] = AssignmentBased()
		rules[domain.RoleViewer2] = AssignmentBased()
	}
	return &Policy{
		rules:                rules,
		planetAdminCanDelete: cfg.PlanetAdminCanDelete,
	}
}

// ruleFor looks up the rule for a user's role; missing roles deny.
func (p *Policy) ruleFor(user *domain.User) Rule {
	if user == nil {
		return Deny()
	}
	return p.rules[user.Role]
}

// CanRead reports whether the user may read the planet.
func (p *Policy) CanRead(user *domain.User, planetID int) bool {
	switch rule := p.ruleFor(user); rule.Kind {
	case RuleUnrestricted:
		return true
	case RuleFixedSet:
		return rule.Fixed.Contains(planetID)
	case RuleAssignmentBased:
		return user.AssignedPlanetIDs.Contains(planetID)
	default:
		return false
	}
}

// CanCreate reports whether the user may create planets.
// Only admin roles create; no viewer variant ever does.
func (p *Policy) CanCreate(user *domain.User) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleSuperAdmin || user.Role == domain.RolePlanetAdmin
}

// CanEdit reports whether the user may mutate the planet.
// SuperAdmin edits anything; PlanetAdmin edits assigned planets only.
func (p *Policy) CanEdit(user *domain.User, planetID int) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RolePlanetAdmin:
		return user.AssignedPlanetIDs.Contains(planetID)
	default:
		return false
	}
}

// CanDelete reports whether the user may delete the planet.
// Stricter than edit by default: SuperAdmin only, unless the policy was
// configured to extend delete to assigned PlanetAdmins.
func (p *Policy) CanDelete(user *domain.User, planetID int) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RolePlanetAdmin:
		return p.planetAdminCanDelete && user.AssignedPlanetIDs.Contains(planetID)
	default:
		return false
	}
}

// AccessibleIDs resolves the set of planet ids the user may read.
// allIDs is the full id universe from the store; it is only consulted for
// unrestricted roles.
func (p *Policy) AccessibleIDs(user *domain.User, allIDs domain.PlanetIDSet) domain.PlanetIDSet {
	switch rule := p.ruleFor(user); rule.Kind {
	case RuleUnrestricted:
		out := make(domain.PlanetIDSet, len(allIDs))
		for id := range allIDs {
			out.Add(id)
		}
		return out
	case RuleFixedSet:
		out := make(domain.PlanetIDSet, len(rule.Fixed))
		for id := range rule.Fixed {
			out.Add(id)
		}
		return out
	case RuleAssignmentBased:
		out := make(domain.PlanetIDSet, len(user.AssignedPlanetIDs))
		for id := range user.AssignedPlanetIDs {
			out.Add(id)
		}
		return out
	default:
		return domain.PlanetIDSet{}
	}
}
