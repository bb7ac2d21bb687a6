package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/decklab/internal/deckconfig"
	"github.com/lox/decklab/internal/progress"
	"github.com/lox/decklab/sim"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// SimFlags are the options shared by every simulator subcommand.
type SimFlags struct {
	Config     string   `short:"c" help:"Deck configuration file (HCL)" type:"existingfile"`
	Group      []string `short:"g" help:"Card group 'count[:cost[:tag1,tag2]]' (repeatable)"`
	Iterations int      `short:"i" help:"Number of Monte Carlo iterations" default:"20000"`
	Seed       int64    `help:"Random seed for reproducible results"`
	Workers    int      `short:"w" help:"Parallel simulation workers" default:"1"`
	Progress   bool     `help:"Log progress while running"`
}

// library resolves the simulated library: the config file's chain
// block when given, otherwise the --group flags.
func (f *SimFlags) library() (*sim.Library, map[string]sim.TypeMask, error) {
	if f.Config != "" {
		cfg, err := deckconfig.Load(f.Config)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Chain == nil {
			return nil, nil, fmt.Errorf("config %s has no chain block", f.Config)
		}
		return deckconfig.BuildLibrary(cfg.Chain.Groups)
	}

	blocks := make([]deckconfig.GroupBlock, 0, len(f.Group))
	for i, spec := range f.Group {
		b, err := parseGroupSpec(spec)
		if err != nil {
			return nil, nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		blocks = append(blocks, b)
	}
	return deckconfig.BuildLibrary(blocks)
}

// options builds the run options, wiring a throttled progress reporter
// when requested. The caller runs done after the simulation.
func (f *SimFlags) options(logger *log.Logger) (opts sim.Options, done func()) {
	opts = sim.Options{
		Iterations: f.Iterations,
		Seed:       f.Seed,
		Workers:    f.Workers,
	}
	done = func() {}
	if f.Progress {
		reporter := progress.NewReporter(logger, quartz.NewReal(), f.Iterations, time.Second)
		opts.OnProgress = reporter.Update
		done = reporter.Done
	}
	return opts, done
}

// parseGroupSpec parses 'count[:cost[:tag1,tag2]]'. An empty cost
// segment is allowed, so '36::land' declares 36 zero-cost lands.
func parseGroupSpec(spec string) (deckconfig.GroupBlock, error) {
	parts := strings.SplitN(spec, ":", 3)

	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return deckconfig.GroupBlock{}, fmt.Errorf("%q: bad count: %w", spec, err)
	}
	b := deckconfig.GroupBlock{Name: spec, Count: count}

	if len(parts) > 1 && parts[1] != "" {
		cost, err := strconv.Atoi(parts[1])
		if err != nil {
			return deckconfig.GroupBlock{}, fmt.Errorf("%q: bad cost: %w", spec, err)
		}
		b.Cost = cost
	}
	if len(parts) > 2 && parts[2] != "" {
		for _, tag := range strings.Split(parts[2], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				b.Tags = append(b.Tags, tag)
			}
		}
	}
	return b, nil
}

// displayResult prints the summary table and distribution for a reveal
// simulation.
func displayResult(title string, res *sim.Result, iterations int, duration time.Duration) {
	fmt.Printf("%s\n\n", headerStyle.Render(title))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	lo, hi := res.Stats.ConfidenceInterval95()
	row := func(name, value string) {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(name), numberStyle.Render(value))
	}
	row("expected", fmt.Sprintf("%.4f", res.Expected))
	row("95% CI", fmt.Sprintf("[%.4f, %.4f]", lo, hi))
	row("std dev", fmt.Sprintf("%.4f", res.Stats.StdDev()))
	row("median", fmt.Sprintf("%.1f", res.Stats.Median()))
	row("p90", fmt.Sprintf("%.1f", res.Stats.Percentile(0.9)))
	w.Flush()

	fmt.Println()
	displayDistribution(res.Distribution)

	fmt.Printf("\n%d iterations in %v\n", iterations, duration.Truncate(time.Millisecond))
}

// displayDistribution prints a frequency bar chart, trimming the empty
// tail.
func displayDistribution(dist []float64) {
	last := len(dist) - 1
	for last > 0 && dist[last] == 0 {
		last--
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for k := 0; k <= last; k++ {
		bar := strings.Repeat("█", int(dist[k]*50+0.5))
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			labelStyle.Render(strconv.Itoa(k)),
			numberStyle.Render(fmt.Sprintf("%.2f%%", dist[k]*100)),
			barStyle.Render(bar))
	}
	w.Flush()
}
