package console

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/nvaswani/fundflow/internal/models"
)

// browseCatalog lists the fund catalog, optionally filtered by category or
// risk level.
func (c *Console) browseCatalog(ctx context.Context) error {
	c.printHeader("FUND CATALOG")

	fmt.Fprintln(c.out, "\n  Filter Options:")
	fmt.Fprintln(c.out, "  1. View All Funds")
	fmt.Fprintln(c.out, "  2. Filter by Category")
	fmt.Fprintln(c.out, "  3. Filter by Risk Level")
	fmt.Fprintln(c.out, "  0. Back to Main Menu")

	choice, err := c.promptInt("\n  Select option: ", 0, 3)
	if err != nil {
		return err
	}

	var funds []models.Fund
	switch choice {
	case 1:
		c.printSubHeader("All Funds")
		funds, err = c.app.Funds.ListFunds(ctx)
	case 2:
		var category models.FundCategory
		category, err = c.pickCategory()
		if err != nil {
			return err
		}
		c.printSubHeader("Funds - " + string(category))
		funds, err = c.app.Funds.FilterByCategory(ctx, category)
	case 3:
		var risk models.RiskLevel
		risk, err = c.pickRisk()
		if err != nil {
			return err
		}
		c.printSubHeader("Funds - " + string(risk) + " Risk")
		funds, err = c.app.Funds.FilterByRisk(ctx, risk)
	case 0:
		return nil
	}
	if err != nil {
		c.printError(err)
		return nil
	}

	if len(funds) == 0 {
		fmt.Fprintln(c.out, "\n  No funds found matching the criteria.")
		return nil
	}
	c.printFundTable(ctx, funds)
	return nil
}

func (c *Console) pickCategory() (models.FundCategory, error) {
	fmt.Fprintln(c.out, "\n  Select Category:")
	fmt.Fprintln(c.out, "  1. EQUITY")
	fmt.Fprintln(c.out, "  2. DEBT")
	fmt.Fprintln(c.out, "  3. HYBRID")
	fmt.Fprintln(c.out, "  4. ELSS")
	choice, err := c.promptInt("  Choice: ", 1, 4)
	if err != nil {
		return "", err
	}
	categories := []models.FundCategory{models.CategoryEquity, models.CategoryDebt, models.CategoryHybrid, models.CategoryELSS}
	return categories[choice-1], nil
}

func (c *Console) pickRisk() (models.RiskLevel, error) {
	fmt.Fprintln(c.out, "\n  Select Risk Level:")
	fmt.Fprintln(c.out, "  1. LOW")
	fmt.Fprintln(c.out, "  2. MEDIUM")
	fmt.Fprintln(c.out, "  3. HIGH")
	choice, err := c.promptInt("  Choice: ", 1, 3)
	if err != nil {
		return "", err
	}
	risks := []models.RiskLevel{models.RiskLow, models.RiskMedium, models.RiskHigh}
	return risks[choice-1], nil
}

// printFundTable renders the catalog with live NAVs. A fund the market no
// longer quotes falls back to its stored NAV.
func (c *Console) printFundTable(ctx context.Context, funds []models.Fund) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n  #\tFund ID\tName\tCategory\tRisk\tNAV")
	for i, f := range funds {
		nav, err := c.app.Market.CurrentNAV(ctx, f.ID)
		if err != nil {
			nav = f.CurrentNAV
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n", i+1, f.ID, f.Name, f.Category, f.Risk, rupees(nav))
	}
	w.Flush()
}

// marketMovement applies a random NAV drift to every fund, then syncs the
// stored catalog so both views agree.
func (c *Console) marketMovement(ctx context.Context) error {
	c.printHeader("SIMULATE MARKET MOVEMENT")

	funds, err := c.app.Funds.ListFunds(ctx)
	if err != nil {
		c.printError(err)
		return nil
	}
	fmt.Fprintln(c.out, "\n  Current Fund NAVs:")
	for _, f := range funds {
		fmt.Fprintf(c.out, "    %s: %s\n", f.ID, rupees(f.CurrentNAV))
	}

	maxPct := c.app.Config.Market.MovementPercent
	fmt.Fprintf(c.out, "\n  Funds will drift randomly within a band (default %.1f%%).\n", maxPct)
	fmt.Fprintln(c.out, "  1. Use default band")
	fmt.Fprintln(c.out, "  2. Custom band")
	fmt.Fprintln(c.out, "  0. Back")
	choice, err := c.promptInt("\n  Select: ", 0, 2)
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		return nil
	case 2:
		maxPct, err = c.promptFloat("  Enter max movement percent: ", 0)
		if err != nil {
			return err
		}
	}

	moved, err := c.app.Market.SimulateMovement(ctx, maxPct)
	if err != nil {
		c.printError(err)
		return nil
	}
	if err := c.app.Funds.RefreshNAVs(ctx); err != nil {
		c.printError(err)
		return nil
	}

	fmt.Fprintf(c.out, "\n  Market moved (max %.1f%% drift).\n", maxPct)
	fmt.Fprintln(c.out, "\n  Updated Fund NAVs:")
	for _, f := range funds {
		if nav, ok := moved[f.ID]; ok {
			fmt.Fprintf(c.out, "    %s: %s\n", f.ID, rupees(nav))
		}
	}
	return nil
}
