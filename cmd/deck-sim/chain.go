package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/decklab/sim"
)

// ChainCmd simulates chained discovery triggers.
type ChainCmd struct {
	SimFlags
	Threshold int `short:"t" help:"Cost threshold of the initial trigger" required:""`
}

func (c *ChainCmd) Run(logger *log.Logger) error {
	lib, _, err := c.library()
	if err != nil {
		return err
	}
	opts, done := c.options(logger)

	startTime := time.Now()
	res, err := sim.Chain(lib, c.Threshold, opts)
	duration := time.Since(startTime)
	if err != nil {
		return err
	}
	done()

	fmt.Printf("%s\n\n", headerStyle.Render(
		fmt.Sprintf("discovery chain at threshold %d", c.Threshold)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	row := func(name, value string) {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(name), numberStyle.Render(value))
	}
	row("mean cards cast", fmt.Sprintf("%.4f", res.MeanCast))
	row("mean cost cast", fmt.Sprintf("%.4f", res.MeanCost))
	row("chain rate", fmt.Sprintf("%.1f%%", res.ChainRate*100))
	row("eligible cards", fmt.Sprintf("%d", len(res.Eligible)))
	lo, hi := res.CastStats.ConfidenceInterval95()
	row("cast 95% CI", fmt.Sprintf("[%.4f, %.4f]", lo, hi))
	w.Flush()

	if len(res.Eligible) > 0 {
		fmt.Println()
		ew := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(ew, "%s\t%s\n", headerStyle.Render("eligible cost"), headerStyle.Render("categories"))
		for _, card := range res.Eligible {
			fmt.Fprintf(ew, "%s\t%s\n",
				numberStyle.Render(fmt.Sprintf("%d", card.Cost)),
				labelStyle.Render(fmt.Sprintf("%d", card.Types.Count())))
		}
		ew.Flush()
	}

	fmt.Printf("\n%d iterations in %v\n", res.Trials, duration.Truncate(time.Millisecond))
	return nil
}
