package dto

// CreatePortalSessionRequest is the DTO for creating a billing portal session.
type CreatePortalSessionRequest struct {
	CustomerID string `json:"customer_id"`
	ReturnURL  string `json:"return_url,omitempty"`
}

// PortalSessionResponse carries the URL the client should redirect to.
type PortalSessionResponse struct {
	URL string `json:"url"`
}

// SubscriptionResponse is the DTO for API responses containing billing state.
type SubscriptionResponse struct {
	UserID            string `json:"user_id"`
	PlanTier          string `json:"plan_tier"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}
