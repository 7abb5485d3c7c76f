package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
)

// reportFunc builds the markdown of one report.
type reportFunc func(ctx context.Context, a *app, params request.ReportParams) (string, error)

// runReport opens the database, parses the shared report flags and prints
// the markdown built by fn.
func runReport(ctx context.Context, currency, granularity string, fn reportFunc) subcommands.ExitStatus {
	a, err := openApp(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	params, err := request.ParseReportParams(currency, granularity, a.formatter.NativeCode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	md, err := fn(ctx, a, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := printMarkdown(md); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type holdingsCmd struct {
	currency string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display quantity and cost basis per ticker" }
func (*holdingsCmd) Usage() string {
	return `portfolioctl holdings [-c native|usd]

  Displays open positions, their cost basis and target against actual ratio.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "native", "Display currency: native (or its code) or usd")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runReport(ctx, c.currency, "", func(ctx context.Context, a *app, p request.ReportParams) (string, error) {
		view, err := a.reports.Holdings(ctx, p.Currency)
		if err != nil {
			return "", err
		}
		return a.formatter.HoldingsMarkdown(view.HoldingsReport)
	})
}

type allocationCmd struct {
	currency string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "compare target and actual allocation" }
func (*allocationCmd) Usage() string {
	return `portfolioctl allocation [-c native|usd]

  Displays the target ratio, actual ratio and deviation of every holding.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "native", "Currency the actual ratios are computed in")
}

func (c *allocationCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runReport(ctx, c.currency, "", func(ctx context.Context, a *app, p request.ReportParams) (string, error) {
		view, err := a.reports.Allocation(ctx, p.Currency)
		if err != nil {
			return "", err
		}
		return a.formatter.AllocationMarkdown(view.Rows)
	})
}

type netWorthCmd struct{}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "display portfolio plus declared assets in USD" }
func (*netWorthCmd) Usage() string {
	return `portfolioctl networth

  Displays the USD value of the portfolio, every declared asset and their total.
`
}

func (*netWorthCmd) SetFlags(*flag.FlagSet) {}

func (*netWorthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runReport(ctx, "", "", func(ctx context.Context, a *app, _ request.ReportParams) (string, error) {
		view, err := a.reports.NetWorth(ctx)
		if err != nil {
			return "", err
		}
		return a.formatter.NetWorthMarkdown(view.NetWorthReport)
	})
}

type flowsCmd struct {
	granularity string
}

func (*flowsCmd) Name() string     { return "flows" }
func (*flowsCmd) Synopsis() string { return "display buy, sell and net flows per period" }
func (*flowsCmd) Usage() string {
	return `portfolioctl flows [-g year|month]

  Displays gross and net cash flows per calendar year or month.
`
}

func (c *flowsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.granularity, "g", "year", "Bucket size: year or month")
}

func (c *flowsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runReport(ctx, "", c.granularity, func(ctx context.Context, a *app, p request.ReportParams) (string, error) {
		view, err := a.reports.Flows(ctx, p.Granularity)
		if err != nil {
			return "", err
		}
		return a.formatter.FlowsMarkdown(view.FlowReport)
	})
}
