package types

type FeedMessage struct {
	Type      string `json:"type"` // "connected" or "refresh"
	Message   string `json:"message,omitempty"`
	CompanyID string `json:"company_id"`
	Reason    string `json:"reason,omitempty"`
}
