package plan

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/date"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
	"github.com/nvaswani/fundflow/internal/storage"
)

// newTestService seeds one user and one fund so plan requests have valid
// references.
func newTestService(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()
	logger := common.NewSilentLogger()
	store := storage.NewManager(logger)
	ctx := context.Background()

	if err := store.Users().Add(ctx, models.User{ID: "USER_000001", Name: "Asha", Email: "asha@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	fund := models.Fund{ID: "FUND_000001", Name: "Bluechip Equity", Category: models.CategoryEquity, Risk: models.RiskHigh, CurrentNAV: 25.50}
	if err := store.Funds().Add(ctx, fund); err != nil {
		t.Fatalf("seed fund: %v", err)
	}

	return NewService(store, common.NewSequenceIDs(), logger), store
}

func monthlyRequest() interfaces.CreatePlanRequest {
	return interfaces.CreatePlanRequest{
		UserID:    "USER_000001",
		FundID:    "FUND_000001",
		Amount:    1000,
		Frequency: models.FrequencyMonthly,
		StartDate: date.MustParse("2024-01-01"),
	}
}

func TestCreatePlan(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreatePlan(context.Background(), monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if p.ID != "SIP_000001" {
		t.Errorf("expected id SIP_000001, got %s", p.ID)
	}
	if p.State != models.PlanActive {
		t.Errorf("expected new plan ACTIVE, got %s", p.State)
	}
	if !p.NextExecutionDate.Equal(p.StartDate) {
		t.Errorf("first execution %s should fall on the start date %s", p.NextExecutionDate, p.StartDate)
	}
	if p.InstallmentCount != 0 {
		t.Errorf("expected zero installments, got %d", p.InstallmentCount)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*interfaces.CreatePlanRequest)
	}{
		{"zero amount", func(r *interfaces.CreatePlanRequest) { r.Amount = 0 }},
		{"negative amount", func(r *interfaces.CreatePlanRequest) { r.Amount = -500 }},
		{"bad frequency", func(r *interfaces.CreatePlanRequest) { r.Frequency = "DAILY" }},
		{"zero start date", func(r *interfaces.CreatePlanRequest) { r.StartDate = date.Date{} }},
		{"negative step-up", func(r *interfaces.CreatePlanRequest) { r.StepUpPercent = -10 }},
	}

	for _, tt := range tests {
		req := monthlyRequest()
		tt.mutate(&req)
		if _, err := svc.CreatePlan(ctx, req); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestCreatePlanUnknownReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := monthlyRequest()
	req.UserID = "USER_999999"
	if _, err := svc.CreatePlan(ctx, req); !models.IsNotFound(err) {
		t.Errorf("expected not-found for unknown user, got %v", err)
	}

	req = monthlyRequest()
	req.FundID = "FUND_999999"
	if _, err := svc.CreatePlan(ctx, req); !models.IsNotFound(err) {
		t.Errorf("expected not-found for unknown fund, got %v", err)
	}
}

func TestPauseUnpauseCycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if err := svc.PausePlan(ctx, p.ID); err != nil {
		t.Fatalf("PausePlan failed: %v", err)
	}
	got, err := svc.GetPlan(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.State != models.PlanPaused {
		t.Errorf("expected PAUSED, got %s", got.State)
	}
	// Pausing must not move the schedule
	if !got.NextExecutionDate.Equal(p.NextExecutionDate) {
		t.Errorf("pause moved the execution date to %s", got.NextExecutionDate)
	}

	// Pausing a paused plan is a state error naming the operation
	err = svc.PausePlan(ctx, p.ID)
	var stateErr *models.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if stateErr.Op != "pause" || stateErr.State != models.PlanPaused || stateErr.PlanID != p.ID {
		t.Errorf("state error fields wrong: %+v", stateErr)
	}

	if err := svc.UnpausePlan(ctx, p.ID); err != nil {
		t.Fatalf("UnpausePlan failed: %v", err)
	}
	got, _ = svc.GetPlan(ctx, p.ID)
	if got.State != models.PlanActive {
		t.Errorf("expected ACTIVE after unpause, got %s", got.State)
	}

	// Unpausing an active plan is refused
	if err := svc.UnpausePlan(ctx, p.ID); err == nil {
		t.Error("expected state error unpausing an active plan")
	}
}

func TestStopIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if err := svc.StopPlan(ctx, p.ID); err != nil {
		t.Fatalf("StopPlan failed: %v", err)
	}

	// Every lifecycle operation on a stopped plan is refused
	if err := svc.PausePlan(ctx, p.ID); err == nil {
		t.Error("expected state error pausing a stopped plan")
	}
	if err := svc.UnpausePlan(ctx, p.ID); err == nil {
		t.Error("expected state error unpausing a stopped plan")
	}
	if err := svc.StopPlan(ctx, p.ID); err == nil {
		t.Error("expected state error stopping a stopped plan")
	}
	if err := svc.ModifyStepUp(ctx, p.ID, 5); err == nil {
		t.Error("expected state error modifying a stopped plan")
	}

	// The record itself stays readable
	got, err := svc.GetPlan(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.State != models.PlanStopped {
		t.Errorf("expected STOPPED, got %s", got.State)
	}
}

func TestStopFromPaused(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	if err := svc.PausePlan(ctx, p.ID); err != nil {
		t.Fatalf("PausePlan failed: %v", err)
	}
	if err := svc.StopPlan(ctx, p.ID); err != nil {
		t.Fatalf("StopPlan from PAUSED failed: %v", err)
	}
}

func TestModifyStepUp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if err := svc.ModifyStepUp(ctx, p.ID, 10); err != nil {
		t.Fatalf("ModifyStepUp failed: %v", err)
	}
	got, _ := svc.GetPlan(ctx, p.ID)
	if got.StepUpPercent != 10 {
		t.Errorf("expected step-up 10, got %v", got.StepUpPercent)
	}

	if err := svc.ModifyStepUp(ctx, p.ID, -1); err == nil {
		t.Error("expected validation error for negative step-up")
	}

	// Paused plans can still be modified
	if err := svc.PausePlan(ctx, p.ID); err != nil {
		t.Fatalf("PausePlan failed: %v", err)
	}
	if err := svc.ModifyStepUp(ctx, p.ID, 0); err != nil {
		t.Errorf("ModifyStepUp on paused plan failed: %v", err)
	}
}

func TestLifecycleOnUnknownPlan(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.PausePlan(ctx, "SIP_999999"); !models.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
	if err := svc.StopPlan(ctx, "SIP_999999"); !models.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
	if _, err := svc.GetPlan(ctx, "SIP_999999"); !models.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestListByUserAndState(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	second, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	if err := svc.PausePlan(ctx, second.ID); err != nil {
		t.Fatalf("PausePlan failed: %v", err)
	}

	all, err := svc.ListByUser(ctx, "USER_000001")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(all))
	}

	active, err := svc.ListByUserAndState(ctx, "USER_000001", models.PlanActive)
	if err != nil {
		t.Fatalf("ListByUserAndState failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != first.ID {
		t.Errorf("unexpected active plans: %+v", active)
	}

	if _, err := svc.ListByUserAndState(ctx, "USER_000001", "SLEEPING"); err == nil {
		t.Error("expected validation error for unknown state")
	}

	none, err := svc.ListByUser(ctx, "USER_999999")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no plans for unknown user, got %d", len(none))
	}
}

func TestInstallmentPreviewCompounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := monthlyRequest()
	req.StepUpPercent = 10
	p, err := svc.CreatePlan(ctx, req)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	// No installments yet: the base amount
	amount, err := svc.InstallmentPreview(ctx, p.ID)
	if err != nil {
		t.Fatalf("InstallmentPreview failed: %v", err)
	}
	if amount != 1000 {
		t.Errorf("expected 1000 before any installments, got %v", amount)
	}

	// After two settled installments: 1000 * 1.1^2
	for i := 0; i < 2; i++ {
		if err := svc.RecordInstallmentSuccess(ctx, p.ID); err != nil {
			t.Fatalf("RecordInstallmentSuccess failed: %v", err)
		}
	}
	amount, err = svc.InstallmentPreview(ctx, p.ID)
	if err != nil {
		t.Fatalf("InstallmentPreview failed: %v", err)
	}
	if math.Abs(amount-1210) > 1e-6 {
		t.Errorf("expected 1210 after two installments, got %v", amount)
	}
}

func TestRecordInstallmentSuccessAdvancesSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, monthlyRequest())
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if err := svc.RecordInstallmentSuccess(ctx, p.ID); err != nil {
		t.Fatalf("RecordInstallmentSuccess failed: %v", err)
	}

	got, err := svc.GetPlan(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.InstallmentCount != 1 {
		t.Errorf("expected 1 installment, got %d", got.InstallmentCount)
	}
	if want := date.MustParse("2024-02-01"); !got.NextExecutionDate.Equal(want) {
		t.Errorf("expected next execution %s, got %s", want, got.NextExecutionDate)
	}

	// Settlement applies even after the plan is paused
	if err := svc.PausePlan(ctx, p.ID); err != nil {
		t.Fatalf("PausePlan failed: %v", err)
	}
	if err := svc.RecordInstallmentSuccess(ctx, p.ID); err != nil {
		t.Fatalf("RecordInstallmentSuccess on paused plan failed: %v", err)
	}
	got, _ = svc.GetPlan(ctx, p.ID)
	if got.InstallmentCount != 2 {
		t.Errorf("expected 2 installments, got %d", got.InstallmentCount)
	}
}
