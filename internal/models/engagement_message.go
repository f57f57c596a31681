package models

// Message is a physician-directed message as returned by the message API.
// Only the fields rendered by the dashboard are required; the rest are decoded
// when the backend includes them.
type Message struct {
	MessageID     int64  `json:"message_id"`
	PhysicianID   int64  `json:"physician_id"`
	PhysicianName string `json:"physician_name"`
	Specialty     string `json:"specialty"`
	State         string `json:"state"`
	// Timestamp is kept as sent; the backend emits naive ISO instants that time.Time cannot decode.
	Timestamp   string `json:"timestamp"`
	Topic       string `json:"topic"`
	Sentiment   string `json:"sentiment"`
	MessageText string `json:"message_text"`

	Channel            string   `json:"channel,omitempty"`
	Direction          string   `json:"direction,omitempty"`
	CampaignID         string   `json:"campaign_id,omitempty"`
	ComplianceTag      string   `json:"compliance_tag,omitempty"`
	DeliveryStatus     string   `json:"delivery_status,omitempty"`
	ResponseLatencySec *float64 `json:"response_latency_sec,omitempty"`
}

// DateRange is the wire shape of GET /messages/date-range. Either bound may be null on an empty corpus.
type DateRange struct {
	MinDate *string `json:"min_date"`
	MaxDate *string `json:"max_date"`
}

// DateBounds is the inclusive window of selectable dates.
type DateBounds struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Bounds converts the wire range into DateBounds. It returns nil unless both ends are present.
func (r DateRange) Bounds() *DateBounds {
	if r.MinDate == nil || r.MaxDate == nil || *r.MinDate == "" || *r.MaxDate == "" {
		return nil
	}
	return &DateBounds{Min: *r.MinDate, Max: *r.MaxDate}
}

// BackendInfo is the payload of the message API root endpoint.
type BackendInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
