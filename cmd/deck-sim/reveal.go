package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/decklab/sim"
)

// RevealCmd counts cards revealed before the first card carrying a
// tag.
type RevealCmd struct {
	SimFlags
	Until string `short:"u" help:"Stop at the first card with this tag" required:""`
}

func (c *RevealCmd) Run(logger *log.Logger) error {
	lib, masks, err := c.library()
	if err != nil {
		return err
	}
	mask, ok := masks[c.Until]
	if !ok {
		return fmt.Errorf("no group carries tag %q", c.Until)
	}
	opts, done := c.options(logger)

	startTime := time.Now()
	res, err := sim.RevealUntil(lib, func(_ int, card sim.Card) bool {
		return card.Types.Has(mask)
	}, opts)
	duration := time.Since(startTime)
	if err != nil {
		return err
	}
	done()

	displayResult(fmt.Sprintf("cards revealed before first %q", c.Until), res, opts.Iterations, duration)
	return nil
}

// StreakCmd measures the run of permanents on top of the library.
type StreakCmd struct {
	SimFlags
}

func (c *StreakCmd) Run(logger *log.Logger) error {
	lib, _, err := c.library()
	if err != nil {
		return err
	}
	opts, done := c.options(logger)

	startTime := time.Now()
	res, err := sim.PermanentStreak(lib, opts)
	duration := time.Since(startTime)
	if err != nil {
		return err
	}
	done()

	displayResult("consecutive permanents from the top", res, opts.Iterations, duration)
	return nil
}

// DiversityCmd counts distinct categories in a fixed-size reveal.
type DiversityCmd struct {
	SimFlags
	Reveal int `short:"r" help:"Number of cards to reveal" required:""`
}

func (c *DiversityCmd) Run(logger *log.Logger) error {
	lib, _, err := c.library()
	if err != nil {
		return err
	}
	opts, done := c.options(logger)

	startTime := time.Now()
	res, err := sim.Diversity(lib, c.Reveal, opts)
	duration := time.Since(startTime)
	if err != nil {
		return err
	}
	done()

	displayResult(fmt.Sprintf("distinct categories in %d reveals", c.Reveal), res, opts.Iterations, duration)
	return nil
}
