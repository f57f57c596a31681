package models

// MatchedRule is a compliance rule the backend determined applies to a message.
type MatchedRule struct {
	RuleID   string `json:"rule_id"`
	RuleName string `json:"rule_name"`
}

// ClassificationResult is the response of POST /classify/{message_id}.
type ClassificationResult struct {
	MessageID      int64         `json:"message_id"`
	MessageText    string        `json:"message_text"`
	MatchedRules   []MatchedRule `json:"matched_rules"`
	ActionRequired *string       `json:"action_required,omitempty"`
	ModifiedText   *string       `json:"modified_text,omitempty"`
}

// HasIssues reports whether any rule matched. Absent and empty rule lists are equivalent.
func (r *ClassificationResult) HasIssues() bool {
	return r != nil && len(r.MatchedRules) > 0
}

// Clone returns a deep copy so callers cannot mutate session state.
func (r *ClassificationResult) Clone() *ClassificationResult {
	if r == nil {
		return nil
	}
	clone := *r
	if r.MatchedRules != nil {
		clone.MatchedRules = append([]MatchedRule(nil), r.MatchedRules...)
	}
	clone.ActionRequired = cloneString(r.ActionRequired)
	clone.ModifiedText = cloneString(r.ModifiedText)
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
