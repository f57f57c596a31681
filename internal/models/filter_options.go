package models

// Option is one selectable value of an enumerated filter dimension.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions is the closed set of values offered for each enumerated dimension.
type FilterOptions struct {
	Topics      []Option `json:"topics"`
	Sentiments  []Option `json:"sentiments"`
	Specialties []Option `json:"specialties"`
	States      []Option `json:"states"`
}

var (
	topicOptions = []Option{
		{Value: "dosing", Label: "Dosing"},
		{Value: "safety", Label: "Safety"},
		{Value: "samples", Label: "Samples"},
		{Value: "trial", Label: "Trial"},
		{Value: "scheduling", Label: "Scheduling"},
		{Value: "reimbursement", Label: "Reimbursement"},
		{Value: "medical_info", Label: "Medical Info"},
	}
	sentimentOptions = []Option{
		{Value: "positive", Label: "Positive"},
		{Value: "neutral", Label: "Neutral"},
		{Value: "negative", Label: "Negative"},
	}
	specialtyOptions = []Option{
		{Value: "Cardiology", Label: "Cardiology"},
		{Value: "Oncology", Label: "Oncology"},
		{Value: "Neurology", Label: "Neurology"},
		{Value: "Pulmonology", Label: "Pulmonology"},
		{Value: "Gastroenterology", Label: "Gastroenterology"},
		{Value: "Dermatology", Label: "Dermatology"},
		{Value: "Endocrinology", Label: "Endocrinology"},
	}
	stateOptions = []Option{
		{Value: "MA", Label: "MA"},
		{Value: "NJ", Label: "NJ"},
		{Value: "CT", Label: "CT"},
		{Value: "FL", Label: "FL"},
		{Value: "NY", Label: "NY"},
		{Value: "GA", Label: "GA"},
		{Value: "CA", Label: "CA"},
		{Value: "PA", Label: "PA"},
	}
)

// DefaultFilterOptions returns a copy of the option sets so callers may not alter them.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Topics:      append([]Option(nil), topicOptions...),
		Sentiments:  append([]Option(nil), sentimentOptions...),
		Specialties: append([]Option(nil), specialtyOptions...),
		States:      append([]Option(nil), stateOptions...),
	}
}
