package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/finance"
)

func usd(d decimal.Decimal) string {
	return finance.Format(d, finance.DefaultCurrency)
}

type loanCmd struct {
	out       io.Writer
	principal string
	rate      string
	months    int
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "compute the monthly payment of a fixed-rate loan" }
func (*loanCmd) Usage() string {
	return `aquacalc loan -amount <principal> -rate <annual %> -months <term>

  Prints the level monthly payment, total repaid and total interest.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.principal, "amount", "5000", "Loan principal.")
	f.StringVar(&c.rate, "rate", "4.5", "Annual interest rate in percent.")
	f.IntVar(&c.months, "months", 12, "Term in months.")
}

func (c *loanCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	principal, err := decimal.NewFromString(c.principal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -amount %q: %v\n", c.principal, err)
		return subcommands.ExitUsageError
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -rate %q: %v\n", c.rate, err)
		return subcommands.ExitUsageError
	}
	q, err := finance.LoanPayment(principal, rate, c.months)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.out, "Monthly payment: %s\n", usd(q.MonthlyPayment))
	fmt.Fprintf(c.out, "Total payment:   %s\n", usd(q.TotalPayment))
	fmt.Fprintf(c.out, "Total interest:  %s\n", usd(q.TotalInterest))
	return subcommands.ExitSuccess
}

type insuranceCmd struct {
	out       io.Writer
	plan      string
	months    int
	frequency string
}

func (*insuranceCmd) Name() string     { return "insurance" }
func (*insuranceCmd) Synopsis() string { return "price an insurance plan over a number of months" }
func (*insuranceCmd) Usage() string {
	return `aquacalc insurance -plan <id> [-months <n>] [-frequency monthly|annual]
`
}

func (c *insuranceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.plan, "plan", "ins-1", "Insurance plan id.")
	f.IntVar(&c.months, "months", 12, "Coverage length in months.")
	f.StringVar(&c.frequency, "frequency", "monthly", "Billing frequency (monthly, annual).")
}

func (c *insuranceCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	freq, err := finance.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	plan, ok := catalog.MustDefault().InsurancePlan(c.plan)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown insurance plan %q\n", c.plan)
		return subcommands.ExitFailure
	}
	q, err := finance.InsuranceCost(plan.MonthlyPremium, c.months, freq)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.out, "%s, %d months billed %s\n", plan.Name, q.Months, q.Frequency)
	if q.Discount.IsPositive() {
		fmt.Fprintf(c.out, "Discount: %s\n", usd(q.Discount))
	}
	fmt.Fprintf(c.out, "Total:    %s\n", usd(q.Total))
	return subcommands.ExitSuccess
}

type investCmd struct {
	out     io.Writer
	project string
	amount  string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "estimate the return and impact of investing in a project" }
func (*investCmd) Usage() string {
	return `aquacalc invest -project <id> -amount <n>
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project, "project", "inv-1", "Project id.")
	f.StringVar(&c.amount, "amount", "1000", "Amount to invest.")
}

func (c *investCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil || !amount.IsPositive() {
		fmt.Fprintf(os.Stderr, "invalid -amount %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	p, ok := catalog.MustDefault().Project(c.project)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown project %q\n", c.project)
		return subcommands.ExitFailure
	}
	est := finance.InvestmentReturn(amount, p.ExpectedROI)
	fmt.Fprintf(c.out, "%s at %s%% expected ROI\n", p.Name, p.ExpectedROI.String())
	fmt.Fprintf(c.out, "Expected return: %s\n", usd(est.Return))
	fmt.Fprintf(c.out, "People helped:   %d\n", est.PeopleHelped)
	return subcommands.ExitSuccess
}
