package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/nvaswani/fundflow/internal/models"
)

// viewPortfolio prints the aggregate summary, then the per-plan valuation
// lines with an optional state filter.
func (c *Console) viewPortfolio(ctx context.Context) error {
	c.printHeader("PORTFOLIO")

	sum, err := c.app.Portfolio.Summary(ctx, c.userID)
	if err != nil {
		c.printError(err)
		return nil
	}
	if sum.ActivePlans+sum.PausedPlans+sum.StoppedPlans == 0 {
		fmt.Fprintln(c.out, "\n  Your portfolio is empty. Create a SIP to get started.")
		return nil
	}

	c.printSubHeader("Summary")
	fmt.Fprintf(c.out, "  Total Invested: %s\n", rupees(sum.TotalInvested))
	fmt.Fprintf(c.out, "  Current Value:  %s\n", rupees(sum.CurrentValue))
	fmt.Fprintf(c.out, "  Total Units:    %.4f\n", sum.TotalUnits)
	fmt.Fprintf(c.out, "  Gain/Loss:      %s (%+.2f%%)\n", rupees(sum.GainLoss), sum.GainLossPercent)
	fmt.Fprintf(c.out, "  Plans:          %d active, %d paused, %d stopped\n",
		sum.ActivePlans, sum.PausedPlans, sum.StoppedPlans)

	fmt.Fprintln(c.out, "\n  Show:")
	fmt.Fprintln(c.out, "  1. All SIPs")
	fmt.Fprintln(c.out, "  2. Active only")
	fmt.Fprintln(c.out, "  3. Paused only")
	fmt.Fprintln(c.out, "  4. Stopped only")
	fmt.Fprintln(c.out, "  0. Back")

	choice, err := c.promptInt("\n  Select: ", 0, 4)
	if err != nil {
		return err
	}

	var items []models.PortfolioItem
	switch choice {
	case 1:
		items, err = c.app.Portfolio.UserPortfolio(ctx, c.userID)
	case 2:
		items, err = c.app.Portfolio.FilterByState(ctx, c.userID, models.PlanActive)
	case 3:
		items, err = c.app.Portfolio.FilterByState(ctx, c.userID, models.PlanPaused)
	case 4:
		items, err = c.app.Portfolio.FilterByState(ctx, c.userID, models.PlanStopped)
	case 0:
		return nil
	}
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "\n  No SIPs match that filter.")
		return nil
	}
	for _, it := range items {
		c.printPortfolioItem(it)
	}
	return nil
}

func (c *Console) printPortfolioItem(it models.PortfolioItem) {
	fmt.Fprintf(c.out, "\n  %s - %s [%s]\n", it.Plan.ID, it.FundName, it.Plan.State)
	fmt.Fprintf(c.out, "    Invested: %s   Units: %.4f   NAV: %s\n",
		rupees(it.TotalInvested), it.TotalUnits, rupees(it.CurrentNAV))
	fmt.Fprintf(c.out, "    Value:    %s   Gain/Loss: %s (%+.2f%%)\n",
		rupees(it.CurrentValue), rupees(it.GainLoss), it.GainLossPercent)
	if it.Plan.State == models.PlanActive {
		fmt.Fprintf(c.out, "    Next: %s on %s (then %s)\n",
			rupees(it.NextInstallment), it.Plan.NextExecutionDate, rupees(it.NextAfterThat))
	}
}

// viewHistory prints every transaction recorded for one plan, with settled
// totals underneath.
func (c *Console) viewHistory(ctx context.Context) error {
	c.printHeader("TRANSACTION HISTORY")

	plan, err := c.pickPlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	txns, err := c.app.Portfolio.History(ctx, plan.ID)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(txns) == 0 {
		fmt.Fprintln(c.out, "\n  No transactions yet for this SIP.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n  #\tTxn ID\tDate\tType\tAmount\tNAV\tUnits\tStatus")
	var invested, units float64
	var settled int
	for i, t := range txns {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\t%.4f\t%s\n",
			i+1, t.ID, t.Date, t.Type, rupees(t.Amount), rupees(t.NAV), t.Units, t.Status)
		if t.Status == models.TransactionSuccess {
			invested += t.Amount
			units += t.Units
			settled++
		}
	}
	w.Flush()
	fmt.Fprintf(c.out, "\n  Settled: %s across %d successful transaction(s), %.4f units.\n",
		rupees(invested), settled, units)
	return nil
}

// exportChart renders a plan's growth chart to a PNG under the configured
// output directory.
func (c *Console) exportChart(ctx context.Context) error {
	c.printHeader("EXPORT GROWTH CHART")

	plan, err := c.pickPlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	png, err := c.app.Portfolio.RenderGrowthChart(ctx, plan.ID)
	if err != nil {
		c.printError(err)
		return nil
	}

	dir := c.app.Config.Charts.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.printError(err)
		return nil
	}
	path := filepath.Join(dir, plan.ID+"_growth.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		c.printError(err)
		return nil
	}
	fmt.Fprintf(c.out, "\n  Chart written to %s.\n", path)
	return nil
}
