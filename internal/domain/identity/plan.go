package identity

import (
	"strings"

	"github.com/gestock/backend/internal/domain/shared"
)

// Plan represents the paid subscription tier of a tenant.
// It is a closed enumeration; unknown values never match any plan check.
type Plan string

const (
	PlanBasic      Plan = "BASIC"
	PlanPremium    Plan = "PREMIUM"
	PlanEnterprise Plan = "ENTERPRISE"
)

// AllPlans lists every valid plan in declaration order.
// The order is stable and is used when rendering plan lists to users.
var AllPlans = []Plan{PlanBasic, PlanPremium, PlanEnterprise}

// planLabels maps plans to their human-readable labels
var planLabels = map[Plan]string{
	PlanBasic:      "Basic",
	PlanPremium:    "Premium",
	PlanEnterprise: "Enterprise",
}

// IsValid reports whether p is one of the known plans
func (p Plan) IsValid() bool {
	_, ok := planLabels[p]
	return ok
}

// Label returns the human-readable label for the plan, or the raw value
// when the plan is unknown
func (p Plan) Label() string {
	if label, ok := planLabels[p]; ok {
		return label
	}
	return string(p)
}

// String implements fmt.Stringer
func (p Plan) String() string {
	return string(p)
}

// ParsePlan parses a plan from its string form (case-insensitive)
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", shared.NewDomainError("INVALID_PLAN", "Unknown subscription plan: "+s)
	}
	return p, nil
}

// JoinPlans renders a plan list in declaration order, comma-joined.
// Used by entitlement rejections so the message is deterministic.
func JoinPlans(plans []Plan) string {
	names := make([]string, 0, len(plans))
	for _, p := range plans {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
