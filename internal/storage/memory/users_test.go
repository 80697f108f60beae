package memory

import (
	"context"
	"testing"

	"github.com/nvaswani/fundflow/internal/models"
)

func TestUserEmailIndex(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	store.Add(ctx, models.User{ID: "USER_000001", Name: "Priya", Email: "priya@example.com"})

	got, err := store.GetByEmail(ctx, "priya@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != "USER_000001" {
		t.Errorf("GetByEmail = %+v", got)
	}

	// Changing the email must move the index entry.
	store.Update(ctx, models.User{ID: "USER_000001", Name: "Priya", Email: "priya@new.example.com"})

	stale, _ := store.GetByEmail(ctx, "priya@example.com")
	if stale != nil {
		t.Errorf("old email still resolves: %+v", stale)
	}
	fresh, _ := store.GetByEmail(ctx, "priya@new.example.com")
	if fresh == nil {
		t.Error("new email does not resolve")
	}

	store.Remove(ctx, "USER_000001")
	gone, _ := store.GetByEmail(ctx, "priya@new.example.com")
	if gone != nil {
		t.Errorf("removed user still resolves by email: %+v", gone)
	}
}

func TestFundCategoryAndRiskIndexes(t *testing.T) {
	store := NewFundStore()
	ctx := context.Background()

	store.Add(ctx, models.Fund{ID: "FUND_000001", Name: "HDFC Flexi Cap Fund", Category: models.CategoryEquity, Risk: models.RiskHigh, CurrentNAV: 150.50})
	store.Add(ctx, models.Fund{ID: "FUND_000003", Name: "SBI Debt Fund", Category: models.CategoryDebt, Risk: models.RiskLow, CurrentNAV: 45.80})
	store.Add(ctx, models.Fund{ID: "FUND_000005", Name: "Kotak Small Cap Fund", Category: models.CategoryEquity, Risk: models.RiskHigh, CurrentNAV: 95.75})

	equity, _ := store.GetByCategory(ctx, models.CategoryEquity)
	if len(equity) != 2 {
		t.Errorf("equity = %d funds, want 2", len(equity))
	}
	if equity[0].ID != "FUND_000001" || equity[1].ID != "FUND_000005" {
		t.Errorf("equity order = %s, %s", equity[0].ID, equity[1].ID)
	}

	low, _ := store.GetByRisk(ctx, models.RiskLow)
	if len(low) != 1 || low[0].ID != "FUND_000003" {
		t.Errorf("low risk = %v", low)
	}

	// NAV updates must not disturb category membership.
	store.Update(ctx, models.Fund{ID: "FUND_000001", Name: "HDFC Flexi Cap Fund", Category: models.CategoryEquity, Risk: models.RiskHigh, CurrentNAV: 151.20})
	equity, _ = store.GetByCategory(ctx, models.CategoryEquity)
	if len(equity) != 2 {
		t.Errorf("equity after NAV update = %d funds, want 2", len(equity))
	}
}
