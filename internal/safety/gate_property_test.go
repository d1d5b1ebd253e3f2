package safety

import (
	"errors"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Cyclone1070/archpilot/internal/action"
)

// Property: any mapping without an operation key is a structural failure.
func TestPropertyMissingOperationIsStructural(t *testing.T) {
	g, err := NewGate(nil)
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("missing operation never reaches the policy", prop.ForAll(
		func(fields map[string]string) bool {
			raw := action.Raw{}
			for k, v := range fields {
				if k != "operation" {
					raw[k] = v
				}
			}
			err := g.Validate(raw)

			var structural *StructuralError
			var rej *PolicyRejection
			return errors.As(err, &structural) && !errors.As(err, &rej)
		},
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: a blocked operation is forbidden even when also allowlisted.
func TestPropertyBlockedIsForbidden(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("blocklist is authoritative", prop.ForAll(
		func(i int, alsoAllowed bool) bool {
			op := DefaultBlocked[i]
			allowed := slices.Clone(DefaultAllowed)
			if alsoAllowed {
				allowed = append(allowed, op)
			}
			g, err := NewGate(NewPolicy(allowed, DefaultBlocked, DefaultLimits(), nil))
			if err != nil {
				return false
			}

			var rej *PolicyRejection
			err = g.Validate(action.Raw{"operation": string(op)})
			return errors.As(err, &rej) && rej.Kind == RejectForbidden
		},
		gen.IntRange(0, len(DefaultBlocked)-1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: an unknown operation's rejection lists the sorted allowed set.
func TestPropertyUnknownOperationEnumeratesAllowed(t *testing.T) {
	g, err := NewGate(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"create_dimensions", "create_tags", "read_elements"}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("not permitted lists allowed operations", prop.ForAll(
		func(name string) bool {
			var rej *PolicyRejection
			err := g.Validate(action.Raw{"operation": name})
			return errors.As(err, &rej) &&
				rej.Kind == RejectNotPermitted &&
				slices.Equal(rej.Allowed, want)
		},
		gen.Identifier().SuchThat(func(s string) bool {
			op := action.Operation(s)
			return !slices.Contains(DefaultAllowed, op) && !slices.Contains(DefaultBlocked, op)
		}),
	))

	properties.TestingRun(t)
}

// Property: every ceiling is inclusive.
func TestPropertyCeilingsInclusive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("count == ceiling passes and ceiling+1 rejects", prop.ForAll(
		func(ceiling int) bool {
			g, err := NewGate(NewPolicy(DefaultAllowed, DefaultBlocked,
				Limits{MaxElements: ceiling, MaxDimensions: ceiling, MaxTags: ceiling}, nil))
			if err != nil {
				return false
			}

			cases := []func(n int) action.Raw{
				func(n int) action.Raw {
					return action.Raw{"operation": "create_dimensions", "estimated_dimension_count": n}
				},
				func(n int) action.Raw {
					return action.Raw{"operation": "create_tags", "estimated_tag_count": n}
				},
				func(n int) action.Raw {
					return action.Raw{"operation": "create_tags", "targets": map[string]any{"element_count": n}}
				},
				func(n int) action.Raw {
					return action.Raw{"operation": "read_elements", "targets": map[string]any{"element_count": 2 * n}}
				},
			}
			for i, build := range cases {
				if g.Validate(build(ceiling)) != nil {
					return false
				}
				over := build(ceiling + 1)
				if i == 3 {
					over = action.Raw{"operation": "read_elements", "targets": map[string]any{"element_count": 2*ceiling + 1}}
				}
				var rej *PolicyRejection
				if !errors.As(g.Validate(over), &rej) || rej.Kind != RejectScope {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100000),
	))

	properties.TestingRun(t)
}
