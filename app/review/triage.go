package review

// Registration error codes produced by the external validator.
const (
	ErrorCodeSporeTier     = "SPORE_TIER"
	ErrorCodeTierNotSet    = "TIER_NOT_SET"
	ErrorCodeNotRegistered = "NOT_REGISTERED"
)

// Triage maps a validation outcome to a label/lifecycle transition. A valid
// outcome always transitions to in-review, clearing both the pending and a
// possible earlier incomplete label. Invalid outcomes reject duplicates and
// ineligible tiers; everything else, including an unknown or absent error
// code, is marked incomplete so it can be fixed and resubmitted.
func Triage(outcome ValidationOutcome, labels Labels) Transition {
	if outcome.Valid {
		return Transition{
			Decision:     DecisionInReview,
			AddLabel:     labels.InReview,
			RemoveLabels: []string{labels.Pending, labels.Incomplete},
		}
	}

	if outcome.Checks.Duplicate.IsDuplicate {
		return Transition{
			Decision:     DecisionRejected,
			AddLabel:     labels.Rejected,
			RemoveLabels: []string{labels.Pending},
			CloseIssue:   true,
		}
	}

	switch outcome.Checks.Registration.ErrorCode {
	case ErrorCodeSporeTier:
		return Transition{
			Decision:     DecisionRejected,
			AddLabel:     labels.Rejected,
			RemoveLabels: []string{labels.Pending},
			CloseIssue:   true,
		}
	default:
		// TIER_NOT_SET, NOT_REGISTERED and anything unrecognized stay open.
		return Transition{
			Decision:     DecisionIncomplete,
			AddLabel:     labels.Incomplete,
			RemoveLabels: []string{labels.Pending},
		}
	}
}
