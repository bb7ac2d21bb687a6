// Package deckconfig loads deck descriptions from HCL files. One file
// can describe the mulligan deck, simulation settings, and the grouped
// library the simulators run against.
package deckconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/decklab/mulligan"
	"github.com/lox/decklab/sim"
)

// Config represents a complete deck configuration file.
type Config struct {
	Deck       *DeckBlock       `hcl:"deck,block"`
	Mulligan   *MulliganBlock   `hcl:"mulligan,block"`
	Simulation *SimulationBlock `hcl:"simulation,block"`
	Chain      *ChainBlock      `hcl:"chain,block"`
}

// DeckBlock describes the deck for mulligan analysis.
type DeckBlock struct {
	Size  int         `hcl:"size"`
	Types []TypeBlock `hcl:"type,block"`
}

// TypeBlock is one tracked card category.
type TypeBlock struct {
	Name     string `hcl:"name,label"`
	Count    int    `hcl:"count"`
	Required int    `hcl:"required,optional"`
	ByTurn   int    `hcl:"by_turn,optional"`
}

// MulliganBlock holds mulligan policy settings.
type MulliganBlock struct {
	Penalty      float64 `hcl:"penalty,optional"`
	FreeMulligan bool    `hcl:"free_mulligan,optional"`
	OnThePlay    bool    `hcl:"on_the_play,optional"`
}

// SimulationBlock holds Monte Carlo run settings.
type SimulationBlock struct {
	Iterations int   `hcl:"iterations,optional"`
	Workers    int   `hcl:"workers,optional"`
	Seed       int64 `hcl:"seed,optional"`
}

// ChainBlock describes the simulated library and discovery threshold.
type ChainBlock struct {
	Threshold int          `hcl:"threshold"`
	Groups    []GroupBlock `hcl:"group,block"`
}

// GroupBlock declares a run of identical cards. Tags name the card's
// categories: "land", "permanent" and "trigger" map to the simulator's
// reserved bits, anything else allocates a custom category.
type GroupBlock struct {
	Name  string   `hcl:"name,label"`
	Count int      `hcl:"count"`
	Cost  int      `hcl:"cost,optional"`
	Tags  []string `hcl:"tags,optional"`
}

// DefaultMulligan returns the mulligan settings used when the block is
// absent.
func DefaultMulligan() *MulliganBlock {
	return &MulliganBlock{Penalty: 0.2}
}

// DefaultSimulation returns the simulation settings used when the
// block is absent.
func DefaultSimulation() *SimulationBlock {
	return &SimulationBlock{
		Iterations: sim.DefaultIterations,
		Workers:    1,
	}
}

// Load reads and decodes an HCL deck configuration file.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("deckconfig: %w", err)
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("deckconfig: parse %s: %s", filename, diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from bytes; filename appears in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("deckconfig: parse %s: %s", filename, diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("deckconfig: decode: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values.
	if config.Mulligan == nil {
		config.Mulligan = DefaultMulligan()
	}
	if config.Simulation == nil {
		config.Simulation = DefaultSimulation()
	}
	if config.Simulation.Iterations == 0 {
		config.Simulation.Iterations = sim.DefaultIterations
	}
	if config.Simulation.Workers == 0 {
		config.Simulation.Workers = 1
	}
	// by_turn defaults to the first turn; required defaults to zero,
	// which tracks the type without constraining the opening hand.
	for i := range config.Deck.TypesOrNil() {
		t := &config.Deck.Types[i]
		if t.ByTurn == 0 {
			t.ByTurn = 1
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// TypesOrNil returns the type blocks, tolerating a nil deck block.
func (d *DeckBlock) TypesOrNil() []TypeBlock {
	if d == nil {
		return nil
	}
	return d.Types
}

// Validate checks the configuration for values the engines would
// reject.
func (c *Config) Validate() error {
	if c.Deck == nil && c.Chain == nil {
		return fmt.Errorf("deckconfig: needs a deck or chain block")
	}
	if c.Deck != nil {
		if c.Deck.Size <= 0 {
			return fmt.Errorf("deckconfig: deck size must be positive")
		}
		total := 0
		for _, t := range c.Deck.Types {
			if t.Count < 0 {
				return fmt.Errorf("deckconfig: type %q count cannot be negative", t.Name)
			}
			if t.Required < 0 {
				return fmt.Errorf("deckconfig: type %q required cannot be negative", t.Name)
			}
			if t.ByTurn < 1 {
				return fmt.Errorf("deckconfig: type %q by_turn must be at least 1", t.Name)
			}
			total += t.Count
		}
		if total > c.Deck.Size {
			return fmt.Errorf("deckconfig: type counts total %d exceed deck size %d", total, c.Deck.Size)
		}
	}
	if c.Mulligan.Penalty < 0 || c.Mulligan.Penalty > 1 {
		return fmt.Errorf("deckconfig: mulligan penalty %g outside [0, 1]", c.Mulligan.Penalty)
	}
	if c.Simulation.Iterations < 0 {
		return fmt.Errorf("deckconfig: iterations cannot be negative")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("deckconfig: workers must be at least 1")
	}
	if c.Chain != nil {
		if c.Chain.Threshold < 0 {
			return fmt.Errorf("deckconfig: chain threshold cannot be negative")
		}
		for _, g := range c.Chain.Groups {
			if g.Count < 0 {
				return fmt.Errorf("deckconfig: group %q count cannot be negative", g.Name)
			}
			if g.Cost < 0 {
				return fmt.Errorf("deckconfig: group %q cost cannot be negative", g.Name)
			}
		}
	}
	return nil
}

// MulliganDeck converts the deck block for strategy computation.
func (c *Config) MulliganDeck() (mulligan.Deck, error) {
	if c.Deck == nil {
		return mulligan.Deck{}, fmt.Errorf("deckconfig: no deck block")
	}
	deck := mulligan.Deck{Size: c.Deck.Size}
	for _, t := range c.Deck.Types {
		deck.Types = append(deck.Types, mulligan.CardType{
			Name:     t.Name,
			Count:    t.Count,
			Required: t.Required,
			ByTurn:   t.ByTurn,
		})
	}
	return deck, nil
}

// MulliganParams converts the mulligan block.
func (c *Config) MulliganParams() mulligan.Params {
	return mulligan.Params{
		Penalty:      c.Mulligan.Penalty,
		FreeMulligan: c.Mulligan.FreeMulligan,
		OnThePlay:    c.Mulligan.OnThePlay,
	}
}

// SimOptions converts the simulation block.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		Iterations: c.Simulation.Iterations,
		Seed:       c.Simulation.Seed,
		Workers:    c.Simulation.Workers,
	}
}

// Library builds the simulated library from the chain block's groups.
func (c *Config) Library() (*sim.Library, error) {
	if c.Chain == nil {
		return nil, fmt.Errorf("deckconfig: no chain block")
	}
	lib, _, err := BuildLibrary(c.Chain.Groups)
	return lib, err
}

// BuildLibrary expands group blocks into a simulated library. The tags
// "land", "permanent" and "trigger" map to the simulator's reserved
// category bits; other tags are allocated custom bits in
// first-appearance order. The returned map records the allocation so
// callers can resolve tag names in predicates.
func BuildLibrary(blocks []GroupBlock) (*sim.Library, map[string]sim.TypeMask, error) {
	masks := map[string]sim.TypeMask{
		"land":      sim.Land,
		"permanent": sim.Permanent,
		"trigger":   sim.Trigger,
	}
	nextBit := uint(0)

	groups := make([]sim.Group, 0, len(blocks))
	for _, g := range blocks {
		var mask sim.TypeMask
		for _, tag := range g.Tags {
			m, ok := masks[tag]
			if !ok {
				m = sim.Bit(nextBit)
				masks[tag] = m
				nextBit++
			}
			mask |= m
		}
		groups = append(groups, sim.Group{Count: g.Count, Cost: g.Cost, Types: mask})
	}
	lib, err := sim.NewLibrary(groups)
	if err != nil {
		return nil, nil, err
	}
	return lib, masks, nil
}
