package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/vanshika/aquafund/internal/catalog"
	"github.com/vanshika/aquafund/internal/finance"
)

type projectsCmd struct {
	out      io.Writer
	fixtures string
	search   string
	risk     string
	category string
	sort     string
}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "list projects with the investments page filters" }
func (*projectsCmd) Usage() string {
	return `aquacalc projects [-q <text>] [-risk <level>] [-category <name>] [-sort <key>] [-fixtures <file>]

  Sort keys: roi-asc, roi-desc, funding-asc, funding-desc.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fixtures, "fixtures", "", "YAML fixture file (defaults to the embedded catalog).")
	f.StringVar(&c.search, "q", "", "Case-insensitive search over name and description.")
	f.StringVar(&c.risk, "risk", catalog.FilterAll, "Risk level filter (low, medium, high, all).")
	f.StringVar(&c.category, "category", catalog.FilterAll, "Category filter.")
	f.StringVar(&c.sort, "sort", "", "Sort key.")
}

func (c *projectsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := catalog.ParseSortKey(c.sort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	cat, err := c.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	projects := catalog.FilterProjects(cat.Projects, catalog.ProjectQuery{
		Search:   c.search,
		Risk:     c.risk,
		Category: c.category,
		Sort:     key,
	})

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRISK\tROI\tFUNDED")
	for _, p := range projects {
		progress := finance.FundingProgress(p.FundingRaised, p.FundingGoal)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%%\t%s%%\n", p.ID, p.Name, p.RiskLevel, p.ExpectedROI.String(), progress.StringFixed(1))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *projectsCmd) load() (*catalog.Catalog, error) {
	if c.fixtures == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(c.fixtures)
}
