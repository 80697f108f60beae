package console

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
)

// createPlan walks through fund selection, amount, frequency, step-up, and
// start date, then registers the plan.
func (c *Console) createPlan(ctx context.Context) error {
	c.printHeader("CREATE NEW SIP")

	funds, err := c.app.Funds.ListFunds(ctx)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(funds) == 0 {
		fmt.Fprintln(c.out, "\n  No funds available. Seed the catalog first.")
		return nil
	}
	c.printFundTable(ctx, funds)

	pick, err := c.promptInt(fmt.Sprintf("\n  Select fund (1-%d, 0 to cancel): ", len(funds)), 0, len(funds))
	if err != nil {
		return err
	}
	if pick == 0 {
		return nil
	}
	fund := funds[pick-1]

	amount, err := c.promptFloat("  Enter installment amount (Rs.): ", 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n  Investment Frequency:")
	fmt.Fprintln(c.out, "  1. WEEKLY")
	fmt.Fprintln(c.out, "  2. MONTHLY")
	fmt.Fprintln(c.out, "  3. QUARTERLY")
	fc, err := c.promptInt("  Choice: ", 1, 3)
	if err != nil {
		return err
	}
	frequencies := []models.Frequency{models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyQuarterly}
	frequency := frequencies[fc-1]

	var stepUp float64
	fmt.Fprintln(c.out, "\n  Enable step-up? (installment grows by a percentage after each success)")
	fmt.Fprintln(c.out, "  1. No")
	fmt.Fprintln(c.out, "  2. Yes")
	sc, err := c.promptInt("  Choice: ", 1, 2)
	if err != nil {
		return err
	}
	if sc == 2 {
		stepUp, err = c.promptFloat("  Step-up percent per installment: ", 0)
		if err != nil {
			return err
		}
	}

	start, err := c.promptDate(fmt.Sprintf("\n  Start date (YYYY-MM-DD, blank for %s): ", c.today), c.today)
	if err != nil {
		return err
	}

	c.printSubHeader("Review")
	fmt.Fprintf(c.out, "  Fund:       %s\n", fund.Name)
	fmt.Fprintf(c.out, "  Amount:     %s per installment\n", rupees(amount))
	fmt.Fprintf(c.out, "  Frequency:  %s\n", frequency)
	if stepUp > 0 {
		fmt.Fprintf(c.out, "  Step-up:    %.1f%% per installment\n", stepUp)
	} else {
		fmt.Fprintln(c.out, "  Step-up:    None")
	}
	fmt.Fprintf(c.out, "  Start Date: %s\n", start)

	ok, err := c.confirm("\n  Create this SIP? (1=Yes, 0=No): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "\n  Cancelled.")
		return nil
	}

	plan, err := c.app.Plans.CreatePlan(ctx, interfaces.CreatePlanRequest{
		UserID:        c.userID,
		FundID:        fund.ID,
		Amount:        amount,
		Frequency:     frequency,
		StartDate:     start,
		StepUpPercent: stepUp,
	})
	if err != nil {
		c.printError(err)
		return nil
	}

	fmt.Fprintln(c.out, "\n  SIP created successfully!")
	c.printPlanDetails(ctx, plan)
	return nil
}

// viewMyPlans lists every plan the acting user owns.
func (c *Console) viewMyPlans(ctx context.Context) error {
	c.printHeader("MY SIPs")

	plans, err := c.app.Plans.ListByUser(ctx, c.userID)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(plans) == 0 {
		fmt.Fprintln(c.out, "\n  You have no SIPs yet. Create one from the main menu.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n  #\tSIP ID\tFund\tAmount\tFrequency\tState\tNext Due")
	for i, p := range plans {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, p.ID, c.fundName(ctx, p.FundID), rupees(p.BaseAmount), p.Frequency, p.State, p.NextExecutionDate)
	}
	w.Flush()
	fmt.Fprintf(c.out, "\n  Total: %d SIP(s)\n", len(plans))
	return nil
}

// managePlan shows one plan and applies a lifecycle action to it.
func (c *Console) managePlan(ctx context.Context) error {
	c.printHeader("MANAGE SIP")

	plan, err := c.pickPlan(ctx)
	if err != nil || plan == nil {
		return err
	}
	c.printPlanDetails(ctx, plan)

	fmt.Fprintln(c.out, "\n  Actions:")
	fmt.Fprintln(c.out, "  1. Pause SIP")
	fmt.Fprintln(c.out, "  2. Resume SIP")
	fmt.Fprintln(c.out, "  3. Stop SIP")
	fmt.Fprintln(c.out, "  4. Modify Step-up")
	fmt.Fprintln(c.out, "  5. Top Up (one-time lump sum)")
	fmt.Fprintln(c.out, "  0. Back")

	choice, err := c.promptInt("\n  Select action: ", 0, 5)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		if err := c.app.Plans.PausePlan(ctx, plan.ID); err != nil {
			c.printError(err)
			return nil
		}
		fmt.Fprintln(c.out, "\n  SIP paused. No installments will run until you resume it.")
	case 2:
		if err := c.app.Plans.UnpausePlan(ctx, plan.ID); err != nil {
			c.printError(err)
			return nil
		}
		fmt.Fprintln(c.out, "\n  SIP resumed.")
	case 3:
		fmt.Fprintln(c.out, "\n  WARNING: Stopping a SIP is permanent. It cannot be restarted.")
		ok, err := c.confirm("  Stop anyway? (1=Yes, 0=No): ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "\n  Cancelled.")
			return nil
		}
		if err := c.app.Plans.StopPlan(ctx, plan.ID); err != nil {
			c.printError(err)
			return nil
		}
		fmt.Fprintln(c.out, "\n  SIP stopped.")
	case 4:
		pct, err := c.promptFloat("\n  New step-up percent (0 disables): ", -1)
		if err != nil {
			return err
		}
		if err := c.app.Plans.ModifyStepUp(ctx, plan.ID, pct); err != nil {
			c.printError(err)
			return nil
		}
		fmt.Fprintln(c.out, "\n  Step-up updated.")
	case 5:
		amount, err := c.promptFloat("\n  Lump sum amount (Rs.): ", 0)
		if err != nil {
			return err
		}
		txn, err := c.app.Scheduler.ExecuteLumpSum(ctx, plan.ID, amount, c.today)
		if err != nil {
			c.printError(err)
			return nil
		}
		fmt.Fprintf(c.out, "\n  Top-up initiated: %s for %s (%.4f units at %s).\n",
			txn.ID, rupees(txn.Amount), txn.Units, rupees(txn.NAV))
		c.reportPendingPayments()
	case 0:
		return nil
	}
	return nil
}

// pickPlan lists the user's plans and returns the chosen one, or nil when
// the user has none or backs out.
func (c *Console) pickPlan(ctx context.Context) (*models.Plan, error) {
	plans, err := c.app.Plans.ListByUser(ctx, c.userID)
	if err != nil {
		c.printError(err)
		return nil, nil
	}
	if len(plans) == 0 {
		fmt.Fprintln(c.out, "\n  You have no SIPs yet. Create one from the main menu.")
		return nil, nil
	}

	fmt.Fprintln(c.out, "\n  Your SIPs:")
	for i, p := range plans {
		fmt.Fprintf(c.out, "  %d. %s - %s [%s]\n", i+1, p.ID, c.fundName(ctx, p.FundID), p.State)
	}
	pick, err := c.promptInt(fmt.Sprintf("\n  Select SIP (1-%d, 0 to cancel): ", len(plans)), 0, len(plans))
	if err != nil {
		return nil, err
	}
	if pick == 0 {
		return nil, nil
	}
	return &plans[pick-1], nil
}

// printPlanDetails renders the full detail block for one plan.
func (c *Console) printPlanDetails(ctx context.Context, p *models.Plan) {
	c.printSubHeader("SIP Details")
	fmt.Fprintf(c.out, "  SIP ID:           %s\n", p.ID)
	fmt.Fprintf(c.out, "  Fund:             %s\n", c.fundName(ctx, p.FundID))
	fmt.Fprintf(c.out, "  State:            %s\n", p.State)
	fmt.Fprintf(c.out, "  Base Amount:      %s\n", rupees(p.BaseAmount))
	fmt.Fprintf(c.out, "  Frequency:        %s\n", p.Frequency)
	if p.StepUpPercent > 0 {
		fmt.Fprintf(c.out, "  Step-up:          %.1f%% per installment\n", p.StepUpPercent)
	} else {
		fmt.Fprintln(c.out, "  Step-up:          None")
	}
	fmt.Fprintf(c.out, "  Start Date:       %s\n", p.StartDate)
	fmt.Fprintf(c.out, "  Next Execution:   %s\n", p.NextExecutionDate)
	fmt.Fprintf(c.out, "  Installments:     %d\n", p.InstallmentCount)

	next, err := c.app.Plans.InstallmentPreview(ctx, p.ID)
	if err != nil {
		next = p.NextInstallmentAmount()
	}
	fmt.Fprintf(c.out, "  Next Installment: %s\n", rupees(next))
}

// fundName resolves a fund ID to its display name, falling back to the raw
// ID when the catalog lookup fails.
func (c *Console) fundName(ctx context.Context, fundID string) string {
	f, err := c.app.Funds.GetFund(ctx, fundID)
	if err != nil || f == nil {
		return fundID
	}
	return f.Name
}
