package models

// PortfolioItem is one plan's valuation line: invested figures aggregated
// over successful transactions plus a mark-to-market against the current NAV.
type PortfolioItem struct {
	Plan            Plan    `json:"plan"`
	FundName        string  `json:"fund_name"`
	CurrentNAV      float64 `json:"current_nav"`
	TotalInvested   float64 `json:"total_invested"`
	TotalUnits      float64 `json:"total_units"`
	CurrentValue    float64 `json:"current_value"` // TotalUnits * CurrentNAV
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"` // 0 when nothing invested yet
	NextInstallment float64 `json:"next_installment"`  // amount of the upcoming installment
	NextAfterThat   float64 `json:"next_after_that"`   // the one after, another step up
}

// PortfolioSummary aggregates a user's plans into a single view.
type PortfolioSummary struct {
	TotalInvested   float64 `json:"total_invested"`
	CurrentValue    float64 `json:"current_value"`
	TotalUnits      float64 `json:"total_units"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
	ActivePlans     int     `json:"active_plans"`
	PausedPlans     int     `json:"paused_plans"`
	StoppedPlans    int     `json:"stopped_plans"`
}
