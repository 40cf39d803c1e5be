package coaches

import "strings"

// Commission tier constants (single source of truth)
const (
	TierStandard = "standard"
	TierPlus     = "plus"
	TierPartner  = "partner"
)

// CommissionPercent returns the platform commission applied to a coach's net
// earnings. Unknown or empty tiers fall back to the platform default.
func CommissionPercent(account *CoachAccount, defaultPercent float64) float64 {
	if account == nil {
		return defaultPercent
	}

	switch strings.ToLower(strings.TrimSpace(account.Tier)) {
	case TierPlus:
		return 25
	case TierPartner:
		return 20
	case TierStandard:
		return 30
	}
	return defaultPercent
}
