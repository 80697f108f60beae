// Package console implements the interactive terminal client: a menu over
// a simulated business date that drives the plan, scheduler, and portfolio
// services.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvaswani/fundflow/internal/app"
	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/date"
)

// Console is the interactive menu shell. All input comes through in and
// all rendering goes to out, so a test can script a whole session.
type Console struct {
	app    *app.App
	in     *bufio.Reader
	out    io.Writer
	logger *common.Logger

	userID string
	today  date.Date
}

// New creates a console bound to the app. The simulated business date
// starts at 2024-01-01 and only moves when the operator advances it.
func New(a *app.App, in io.Reader, out io.Writer) *Console {
	return &Console{
		app:    a,
		in:     bufio.NewReader(in),
		out:    out,
		logger: a.Logger,
		today:  date.New(2024, 1, 1),
	}
}

// Run drives the session: resolve the acting user, then loop the main
// menu until exit. Running out of input ends the session cleanly.
func (c *Console) Run(ctx context.Context) error {
	if err := c.resolveUser(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for {
		c.printMainMenu()
		choice, err := c.promptInt("\n  Select option: ", 0, 10)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case 1:
			err = c.browseCatalog(ctx)
		case 2:
			err = c.createPlan(ctx)
		case 3:
			err = c.viewMyPlans(ctx)
		case 4:
			err = c.managePlan(ctx)
		case 5:
			err = c.viewPortfolio(ctx)
		case 6:
			err = c.viewHistory(ctx)
		case 7:
			err = c.runDue(ctx)
		case 8:
			err = c.advanceDate(ctx)
		case 9:
			err = c.marketMovement(ctx)
		case 10:
			err = c.exportChart(ctx)
		case 0:
			fmt.Fprintln(c.out, "\n  Goodbye! Happy investing.")
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// resolveUser picks the seeded demo user when one exists, otherwise
// registers a new account from prompted details.
func (c *Console) resolveUser(ctx context.Context) error {
	if c.app.DemoUserID != "" {
		c.userID = c.app.DemoUserID
		user, err := c.app.Storage.Users().GetByID(ctx, c.userID)
		if err == nil && user != nil {
			fmt.Fprintf(c.out, "\n  Welcome back, %s! (%s)\n", user.Name, user.ID)
		}
		return nil
	}

	name, err := c.promptString("\n  Enter your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "Demo User"
	}
	email, err := c.promptString("  Enter your email: ")
	if err != nil {
		return err
	}
	if email == "" {
		email = "demo@example.com"
	}

	user, err := c.app.RegisterUser(ctx, name, email)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	c.userID = user.ID
	fmt.Fprintf(c.out, "\n  Welcome, %s!\n  Your User ID: %s\n", user.Name, user.ID)
	return nil
}

func (c *Console) printMainMenu() {
	fmt.Fprintf(c.out, "\n  Current Date: %s\n", c.today)
	fmt.Fprintln(c.out, "\n  MAIN MENU")
	fmt.Fprintln(c.out, "  ---------")
	fmt.Fprintln(c.out, "  1. Browse Fund Catalog")
	fmt.Fprintln(c.out, "  2. Start a New Plan")
	fmt.Fprintln(c.out, "  3. View My Plans")
	fmt.Fprintln(c.out, "  4. Manage a Plan")
	fmt.Fprintln(c.out, "  5. View Portfolio")
	fmt.Fprintln(c.out, "  6. Transaction History")
	fmt.Fprintln(c.out, "  7. Run Due Installments")
	fmt.Fprintln(c.out, "  8. Advance Date")
	fmt.Fprintln(c.out, "  9. Simulate Market Movement")
	fmt.Fprintln(c.out, "  10. Export Growth Chart")
	fmt.Fprintln(c.out, "  0. Exit")
}

func (c *Console) printHeader(title string) {
	fmt.Fprintf(c.out, "\n%s\n  %s\n%s\n", strings.Repeat("=", 60), title, strings.Repeat("=", 60))
}

func (c *Console) printSubHeader(title string) {
	fmt.Fprintf(c.out, "\n%s\n  %s\n%s\n", strings.Repeat("-", 40), title, strings.Repeat("-", 40))
}

// printError renders a domain error the way the operator should see it,
// typed messages included.
func (c *Console) printError(err error) {
	fmt.Fprintf(c.out, "\n  ERROR: %v\n", err)
}

// rupees formats a money amount for display.
func rupees(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

// readLine reads one line of input, trimmed. A trailing partial line at
// EOF still counts.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (c *Console) promptString(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	return c.readLine()
}

// promptInt keeps asking until it gets an integer in [min, max].
func (c *Console) promptInt(prompt string, min, max int) (int, error) {
	for {
		line, err := c.promptString(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < min || v > max {
			fmt.Fprintf(c.out, "  Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return v, nil
	}
}

// promptFloat keeps asking until it gets a number greater than min.
func (c *Console) promptFloat(prompt string, min float64) (float64, error) {
	for {
		line, err := c.promptString(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil || v <= min {
			fmt.Fprintln(c.out, "  Invalid input. Please enter a positive number.")
			continue
		}
		return v, nil
	}
}

// promptDate reads a YYYY-MM-DD date, using fallback on an empty line.
func (c *Console) promptDate(prompt string, fallback date.Date) (date.Date, error) {
	for {
		line, err := c.promptString(prompt)
		if err != nil {
			return date.Date{}, err
		}
		if line == "" {
			return fallback, nil
		}
		d, err := date.Parse(line)
		if err != nil {
			fmt.Fprintln(c.out, "  Invalid date. Use YYYY-MM-DD.")
			continue
		}
		return d, nil
	}
}

// confirm asks a 1=Yes, 0=No question.
func (c *Console) confirm(prompt string) (bool, error) {
	v, err := c.promptInt(prompt, 0, 1)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}
