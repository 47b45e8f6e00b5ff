package types

const ContextPrincipalKey = "principal"

// Refresh reasons sent on the company websocket feed.
const (
	ReasonCompanyUpdated        = "company_updated"
	ReasonCompanyDeleted        = "company_deleted"
	ReasonReviewCreated         = "review_created"
	ReasonReviewUpdated         = "review_updated"
	ReasonReviewDeleted         = "review_deleted"
	ReasonAccomplishmentCreated = "accomplishment_created"
	ReasonAccomplishmentUpdated = "accomplishment_updated"
	ReasonAccomplishmentDeleted = "accomplishment_deleted"
)
