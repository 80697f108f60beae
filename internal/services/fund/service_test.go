package fund

import (
	"context"
	"math/rand"
	"testing"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
	"github.com/nvaswani/fundflow/internal/services/market"
	"github.com/nvaswani/fundflow/internal/storage"
)

func newTestService(t *testing.T) (*Service, *market.Service) {
	t.Helper()
	logger := common.NewSilentLogger()
	mkt := market.NewServiceWithRand(logger, rand.New(rand.NewSource(3)))
	svc := NewService(storage.NewManager(logger), mkt, common.NewSequenceIDs(), logger)
	return svc, mkt
}

func equityFundRequest(name string) interfaces.CreateFundRequest {
	return interfaces.CreateFundRequest{
		Name:     name,
		Category: models.CategoryEquity,
		Risk:     models.RiskHigh,
		NAV:      25.50,
	}
}

func TestCreateFund(t *testing.T) {
	svc, mkt := newTestService(t)
	ctx := context.Background()

	fund, err := svc.CreateFund(ctx, equityFundRequest("Bluechip Equity Fund"))
	if err != nil {
		t.Fatalf("CreateFund failed: %v", err)
	}
	if fund.ID != "FUND_000001" {
		t.Errorf("expected id FUND_000001, got %s", fund.ID)
	}
	if fund.CurrentNAV != 25.50 {
		t.Errorf("expected NAV 25.50, got %v", fund.CurrentNAV)
	}

	// Catalog entry and market quote both exist
	got, err := svc.GetFund(ctx, fund.ID)
	if err != nil {
		t.Fatalf("GetFund failed: %v", err)
	}
	if got.Name != "Bluechip Equity Fund" {
		t.Errorf("expected stored name, got %s", got.Name)
	}
	nav, err := mkt.CurrentNAV(ctx, fund.ID)
	if err != nil {
		t.Fatalf("market quote missing after create: %v", err)
	}
	if nav != 25.50 {
		t.Errorf("expected market quote 25.50, got %v", nav)
	}
}

func TestCreateFundValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  interfaces.CreateFundRequest
	}{
		{"blank name", interfaces.CreateFundRequest{Name: "   ", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: 10}},
		{"bad category", interfaces.CreateFundRequest{Name: "F", Category: "CRYPTO", Risk: models.RiskHigh, NAV: 10}},
		{"bad risk", interfaces.CreateFundRequest{Name: "F", Category: models.CategoryEquity, Risk: "EXTREME", NAV: 10}},
		{"zero nav", interfaces.CreateFundRequest{Name: "F", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: 0}},
		{"negative nav", interfaces.CreateFundRequest{Name: "F", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: -5}},
	}

	for _, tt := range tests {
		if _, err := svc.CreateFund(ctx, tt.req); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestGetFundNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetFund(context.Background(), "FUND_999999")
	if !models.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestListAndFilterFunds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seed := []interfaces.CreateFundRequest{
		{Name: "Bluechip Equity", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: 25.50},
		{Name: "Gilt Debt", Category: models.CategoryDebt, Risk: models.RiskLow, NAV: 18.75},
		{Name: "Balanced Hybrid", Category: models.CategoryHybrid, Risk: models.RiskMedium, NAV: 31.20},
		{Name: "Tax Saver ELSS", Category: models.CategoryELSS, Risk: models.RiskMedium, NAV: 105.80},
	}
	for _, req := range seed {
		if _, err := svc.CreateFund(ctx, req); err != nil {
			t.Fatalf("CreateFund(%s) failed: %v", req.Name, err)
		}
	}

	all, err := svc.ListFunds(ctx)
	if err != nil {
		t.Fatalf("ListFunds failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 funds, got %d", len(all))
	}

	equity, err := svc.FilterByCategory(ctx, models.CategoryEquity)
	if err != nil {
		t.Fatalf("FilterByCategory failed: %v", err)
	}
	if len(equity) != 1 || equity[0].Name != "Bluechip Equity" {
		t.Errorf("unexpected equity filter result: %+v", equity)
	}

	moderate, err := svc.FilterByRisk(ctx, models.RiskMedium)
	if err != nil {
		t.Fatalf("FilterByRisk failed: %v", err)
	}
	if len(moderate) != 2 {
		t.Errorf("expected 2 moderate-risk funds, got %d", len(moderate))
	}

	if _, err := svc.FilterByCategory(ctx, "CRYPTO"); err == nil {
		t.Error("expected validation error for unknown category")
	}
	if _, err := svc.FilterByRisk(ctx, "EXTREME"); err == nil {
		t.Error("expected validation error for unknown risk level")
	}
}

func TestFundExists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	fund, err := svc.CreateFund(ctx, equityFundRequest("Bluechip Equity Fund"))
	if err != nil {
		t.Fatalf("CreateFund failed: %v", err)
	}

	exists, err := svc.FundExists(ctx, fund.ID)
	if err != nil {
		t.Fatalf("FundExists failed: %v", err)
	}
	if !exists {
		t.Error("expected fund to exist")
	}

	exists, err = svc.FundExists(ctx, "FUND_999999")
	if err != nil {
		t.Fatalf("FundExists failed: %v", err)
	}
	if exists {
		t.Error("expected unknown fund to not exist")
	}
}

func TestRefreshNAVsFollowsMarket(t *testing.T) {
	svc, mkt := newTestService(t)
	ctx := context.Background()

	fund, err := svc.CreateFund(ctx, equityFundRequest("Bluechip Equity Fund"))
	if err != nil {
		t.Fatalf("CreateFund failed: %v", err)
	}

	if err := mkt.UpdateNAV(ctx, fund.ID, 27.10); err != nil {
		t.Fatalf("UpdateNAV failed: %v", err)
	}
	if err := svc.RefreshNAVs(ctx); err != nil {
		t.Fatalf("RefreshNAVs failed: %v", err)
	}

	got, err := svc.GetFund(ctx, fund.ID)
	if err != nil {
		t.Fatalf("GetFund failed: %v", err)
	}
	if got.CurrentNAV != 27.10 {
		t.Errorf("expected catalog NAV 27.10 after refresh, got %v", got.CurrentNAV)
	}
}
