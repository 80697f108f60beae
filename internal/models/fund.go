package models

// Fund is a mutual fund available for investment.
type Fund struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Category   FundCategory `json:"category"`
	Risk       RiskLevel    `json:"risk"`
	CurrentNAV float64      `json:"current_nav"` // last NAV synced from the market service
}
