package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/decklab/internal/deckconfig"
	"github.com/lox/decklab/internal/fileutil"
	"github.com/lox/decklab/internal/tui"
	"github.com/lox/decklab/mulligan"
)

type CLI struct {
	Config       string   `short:"c" help:"Deck configuration file (HCL)" type:"existingfile"`
	Type         []string `short:"t" help:"Card type in format 'Name:count[:required[:byTurn]]' (repeatable)"`
	DeckSize     int      `help:"Deck size when no config file is given" default:"99"`
	Penalty      float64  `short:"p" help:"Fractional success cost per mulligan" default:"0.2"`
	FreeMulligan bool     `short:"f" help:"First mulligan is penalty-free"`
	OnThePlay    bool     `help:"Decide on the play (one fewer draw)"`
	Hands        bool     `help:"Show the full hand-outcome table"`
	Marginals    bool     `short:"m" help:"Show the marginal value of one extra copy per type"`
	JSON         string   `short:"j" help:"Write results as JSON to this file"`
	Interactive  bool     `short:"i" help:"Browse hand outcomes interactively"`
	NoColor      bool     `help:"Disable colored output"`
	Debug        bool     `help:"Enable debug logging"`
}

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	typeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	mullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mulligan-odds"),
		kong.Description("Keep-or-mulligan policy analysis for labeled deck compositions"),
		kong.UsageOnError(),
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := log.New(os.Stderr)
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	deck, params, err := resolveInputs(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	if cli.Interactive {
		if err := tui.Run(deck, params, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ctx.Exit(1)
		}
		return
	}

	startTime := time.Now()
	strategy, err := mulligan.Compute(deck, params)
	duration := time.Since(startTime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	displaySummary(strategy, params)
	if cli.Hands {
		fmt.Println()
		displayHands(deck, strategy)
	}
	if cli.Marginals {
		marginals, err := mulligan.MarginalValue(deck, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ctx.Exit(1)
		}
		fmt.Println()
		displayMarginals(marginals)
	}
	if cli.JSON != "" {
		if err := exportJSON(cli.JSON, deck, params, strategy); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ctx.Exit(1)
		}
		logger.Info("wrote results", "path", cli.JSON)
	}

	fmt.Printf("\n%d hands in %v\n", len(strategy.Hands), duration.Truncate(time.Microsecond))
}

// resolveInputs builds the deck and parameters from the config file
// when given, otherwise from flags.
func resolveInputs(cli *CLI) (mulligan.Deck, mulligan.Params, error) {
	if cli.Config != "" {
		cfg, err := deckconfig.Load(cli.Config)
		if err != nil {
			return mulligan.Deck{}, mulligan.Params{}, err
		}
		deck, err := cfg.MulliganDeck()
		if err != nil {
			return mulligan.Deck{}, mulligan.Params{}, err
		}
		return deck, cfg.MulliganParams(), nil
	}

	deck := mulligan.Deck{Size: cli.DeckSize}
	for i, spec := range cli.Type {
		ct, err := parseTypeSpec(spec)
		if err != nil {
			return mulligan.Deck{}, mulligan.Params{}, fmt.Errorf("type %d: %w", i+1, err)
		}
		deck.Types = append(deck.Types, ct)
	}
	params := mulligan.Params{
		Penalty:      cli.Penalty,
		FreeMulligan: cli.FreeMulligan,
		OnThePlay:    cli.OnThePlay,
	}
	return deck, params, nil
}

// parseTypeSpec parses 'Name:count[:required[:byTurn]]'. Omitted
// required defaults to 0 (tracked only); omitted byTurn defaults to 1.
func parseTypeSpec(spec string) (mulligan.CardType, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return mulligan.CardType{}, fmt.Errorf("%q: want 'Name:count[:required[:byTurn]]'", spec)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return mulligan.CardType{}, fmt.Errorf("%q: empty type name", spec)
	}

	ct := mulligan.CardType{Name: name, ByTurn: 1}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return mulligan.CardType{}, fmt.Errorf("%q: bad count: %w", spec, err)
	}
	ct.Count = count

	if len(parts) > 2 {
		required, err := strconv.Atoi(parts[2])
		if err != nil {
			return mulligan.CardType{}, fmt.Errorf("%q: bad required: %w", spec, err)
		}
		ct.Required = required
	}
	if len(parts) > 3 {
		byTurn, err := strconv.Atoi(parts[3])
		if err != nil {
			return mulligan.CardType{}, fmt.Errorf("%q: bad byTurn: %w", spec, err)
		}
		ct.ByTurn = byTurn
	}
	return ct, nil
}

func displaySummary(s *mulligan.Strategy, params mulligan.Params) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("metric"), headerStyle.Render("value"))
	row := func(name string, value string) {
		fmt.Fprintf(w, "%s\t%s\n", typeStyle.Render(name), numberStyle.Render(value))
	}
	row("keep probability", fmt.Sprintf("%.1f%%", s.KeepProb*100))
	row("keep threshold", fmt.Sprintf("%.4f", s.Threshold))
	row("best hand success", fmt.Sprintf("%.4f", s.BestKeepProb))
	row("expected success", fmt.Sprintf("%.4f", s.ExpectedSuccess))
	row("no-mulligan success", fmt.Sprintf("%.4f", s.NoMulliganSuccess))
	row("average mulligans", fmt.Sprintf("%.3f", s.AvgMulligans))
	row("expected hand size", fmt.Sprintf("%.3f", s.ExpectedCards))

	w.Flush()
}

func displayHands(deck mulligan.Deck, s *mulligan.Strategy) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for _, ct := range deck.Types {
		fmt.Fprintf(w, "%s\t", headerStyle.Render(ct.Name))
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("P(hand)"),
		headerStyle.Render("P(success)"),
		headerStyle.Render("decision"))

	for _, h := range s.Hands {
		for _, c := range h.Counts {
			fmt.Fprintf(w, "%d\t", c)
		}
		decision := keepStyle.Render("keep")
		if !h.Keep {
			decision = mullStyle.Render("mulligan")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			numberStyle.Render(fmt.Sprintf("%.4f", h.HandProb)),
			numberStyle.Render(fmt.Sprintf("%.4f", h.SuccessProb)),
			decision)
	}

	w.Flush()
}

func displayMarginals(marginals []mulligan.TypeMarginal) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("one more"),
		headerStyle.Render("Δ expected success"),
		headerStyle.Render("Δ no-mulligan"))
	for _, m := range marginals {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			typeStyle.Render(m.Name),
			numberStyle.Render(fmt.Sprintf("%+.5f", m.DeltaExpectedSuccess)),
			numberStyle.Render(fmt.Sprintf("%+.5f", m.DeltaNoMulligan)))
	}

	w.Flush()
}

// exportJSON writes the strategy atomically so watchers never read a
// half-written file.
func exportJSON(path string, deck mulligan.Deck, params mulligan.Params, s *mulligan.Strategy) error {
	export := struct {
		Deck     mulligan.Deck      `json:"deck"`
		Params   mulligan.Params    `json:"params"`
		Strategy *mulligan.Strategy `json:"strategy"`
	}{deck, params, s}
	return fileutil.WriteJSONAtomic(path, export, 0644)
}
