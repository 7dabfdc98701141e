// Package entitlement models a user's plan, token balance and subscription state,
// together with the pure rules that meter token consumption.
package entitlement

import (
	"strings"
	"time"
)

const (
	// FreeTokenCap is the most tokens a Free user can hold.
	FreeTokenCap = 7
	// SignupBonusTokens is granted once when the entitlement is created.
	SignupBonusTokens = 7
)

// DefaultProPeriod is one paid month.
const DefaultProPeriod = 30 * 24 * time.Hour

// Plan is the subscription tier.
type Plan string

const (
	PlanFree Plan = "Free"
	PlanPro  Plan = "Pro"
)

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPro:
		return true
	default:
		return false
	}
}

func (p Plan) String() string {
	return string(p)
}

// ParsePlan accepts plan names case-insensitively.
func ParsePlan(s string) (Plan, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PlanFree, true
	case "pro":
		return PlanPro, true
	default:
		return "", false
	}
}

// Status is the subscription health, independent of plan.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
	StatusFailed   Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
