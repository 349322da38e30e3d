// Package routing classifies hook payloads into delegation tiers.
//
// The policy is data: ordered keyword sets for prompts and ordered path rules
// for files. Every table is evaluated first-match-wins, so the position of an
// entry is part of the policy.
package routing

// Tier is the strength of a delegation recommendation.
type Tier int

const (
	// TierNone means nothing matched.
	TierNone Tier = iota
	// TierKeep means a veto keyword matched; the work stays with the host.
	TierKeep
	// TierShould is a soft suggestion to delegate.
	TierShould
	// TierMust is a strong recommendation to delegate.
	TierMust
)

// String returns the label used in advisory messages.
func (t Tier) String() string {
	switch t {
	case TierKeep:
		return "KEEP"
	case TierShould:
		return "SHOULD"
	case TierMust:
		return "MUST"
	default:
		return "NONE"
	}
}

// Classification is the result of running one classifier.
type Classification struct {
	Tier Tier

	// Trigger is the keyword or path pattern that matched.
	Trigger string

	// Label is the human-readable file category (path rules only).
	Label string

	// Note is an optional extra advisory line attached to the matching rule.
	Note string

	// HelperPath is the resolved council.sh path for MUST-tier prompts, if any.
	HelperPath string
}

// Emits reports whether the classification produces advisory output.
func (c Classification) Emits() bool {
	return c.Tier == TierShould || c.Tier == TierMust
}
