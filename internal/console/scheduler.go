package console

import (
	"context"
	"fmt"

	"github.com/nvaswani/fundflow/internal/models"
)

// runDue executes every plan due on the simulated date, then offers manual
// settlement for any payments the gateway is holding.
func (c *Console) runDue(ctx context.Context) error {
	c.printHeader("RUN DUE INSTALLMENTS")

	due, err := c.app.Storage.Plans().GetDueAsOf(ctx, c.today)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(due) == 0 {
		fmt.Fprintf(c.out, "\n  No installments due as of %s.\n", c.today)
		return nil
	}

	fmt.Fprintf(c.out, "\n  %d plan(s) due as of %s:\n", len(due), c.today)
	for _, p := range due {
		fmt.Fprintf(c.out, "    %s - %s (%s due %s)\n",
			p.ID, c.fundName(ctx, p.FundID), rupees(p.NextInstallmentAmount()), p.NextExecutionDate)
	}

	ok, err := c.confirm("\n  Execute now? (1=Yes, 0=No): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "\n  Cancelled.")
		return nil
	}

	n, err := c.app.Scheduler.ExecuteDue(ctx, c.today)
	if err != nil {
		c.printError(err)
		return nil
	}
	fmt.Fprintf(c.out, "\n  RESULT: %d plan(s) processed.\n", n)

	return c.settlePayments(ctx)
}

// settlePayments drives the manual completion loop for payments the gateway
// holds. With auto-complete enabled there is nothing to settle and the loop
// never starts.
func (c *Console) settlePayments(_ context.Context) error {
	for {
		pending := c.app.Gateway.Pending()
		if len(pending) == 0 {
			return nil
		}

		c.printSubHeader("Pending Payments")
		for i, req := range pending {
			fmt.Fprintf(c.out, "  %d. %s (%s) - %s\n", i+1, req.TransactionID, req.PlanID, rupees(req.Amount))
		}

		fmt.Fprintln(c.out, "\n  1. Confirm all as SUCCESS")
		fmt.Fprintln(c.out, "  2. Mark all as FAILURE")
		fmt.Fprintln(c.out, "  3. Settle one payment")
		fmt.Fprintln(c.out, "  0. Leave pending")

		choice, err := c.promptInt("\n  Select: ", 0, 3)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			n, err := c.app.Gateway.CompleteAll(models.TransactionSuccess)
			if err != nil {
				c.printError(err)
				continue
			}
			fmt.Fprintf(c.out, "\n  %d payment(s) confirmed.\n", n)
		case 2:
			n, err := c.app.Gateway.CompleteAll(models.TransactionFailed)
			if err != nil {
				c.printError(err)
				continue
			}
			fmt.Fprintf(c.out, "\n  %d payment(s) failed. The plans stay due for retry.\n", n)
		case 3:
			pick, err := c.promptInt(fmt.Sprintf("  Payment (1-%d): ", len(pending)), 1, len(pending))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "  1. SUCCESS")
			fmt.Fprintln(c.out, "  2. FAILURE")
			sc, err := c.promptInt("  Outcome: ", 1, 2)
			if err != nil {
				return err
			}
			status := models.TransactionSuccess
			if sc == 2 {
				status = models.TransactionFailed
			}
			if err := c.app.Gateway.Complete(pending[pick-1].TransactionID, status); err != nil {
				c.printError(err)
				continue
			}
			fmt.Fprintf(c.out, "\n  %s settled as %s.\n", pending[pick-1].TransactionID, status)
		case 0:
			fmt.Fprintf(c.out, "\n  %d payment(s) left pending.\n", len(pending))
			return nil
		}
	}
}

// reportPendingPayments prints a one-line reminder when the gateway is
// holding confirmations for manual settlement.
func (c *Console) reportPendingPayments() {
	if n := len(c.app.Gateway.Pending()); n > 0 {
		fmt.Fprintf(c.out, "  %d payment(s) awaiting confirmation. Settle them under Run Due Installments.\n", n)
	}
}

// advanceDate moves the simulated business date forward and reports what
// became due.
func (c *Console) advanceDate(ctx context.Context) error {
	c.printHeader("ADVANCE SIMULATED DATE")

	fmt.Fprintf(c.out, "\n  Current date: %s\n", c.today)
	fmt.Fprintln(c.out, "\n  1. Advance 1 day")
	fmt.Fprintln(c.out, "  2. Advance 1 week")
	fmt.Fprintln(c.out, "  3. Advance 1 month")
	fmt.Fprintln(c.out, "  4. Advance custom days")
	fmt.Fprintln(c.out, "  0. Back")

	choice, err := c.promptInt("\n  Select: ", 0, 4)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		c.today = c.today.AddDays(1)
	case 2:
		c.today = c.today.AddWeeks(1)
	case 3:
		c.today = c.today.AddMonths(1)
	case 4:
		days, err := c.promptInt("  Days to advance (1-365): ", 1, 365)
		if err != nil {
			return err
		}
		c.today = c.today.AddDays(days)
	case 0:
		return nil
	}

	fmt.Fprintf(c.out, "\n  Date advanced to %s.\n", c.today)

	due, err := c.app.Storage.Plans().GetDueAsOf(ctx, c.today)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(due) > 0 {
		fmt.Fprintf(c.out, "  %d plan(s) now due. Use Run Due Installments to execute them.\n", len(due))
	}
	return nil
}
