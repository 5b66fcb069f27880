package app

import (
	"fmt"
	"log"
	"time"

	"mad-life/internal/core"
	"mad-life/internal/presets"
	"mad-life/internal/sim"
	"mad-life/internal/sound"
)

// Action is a front-end independent user command.
type Action uint8

const (
	ActionNone Action = iota
	ActionToggleRun
	ActionStep
	ActionReset
	ActionGridSize
	ActionPreset
	ActionNextPreset
	ActionCycleRule
	ActionFaster
	ActionSlower
	ActionToggleToric
	ActionNextInput
	ActionRandom
	ActionQuit
)

// Command is an Action with its argument: the GridSize for ActionGridSize,
// the preset index for ActionPreset.
type Command struct {
	Action Action
	Arg    int
}

// TickStep is how much + and - change the tick interval.
const TickStep = 10

// CommandForRune maps the shared keyboard layout. Digits 1-3 pick grid
// sizes; 0 and 4-9 pick presets 0 through 6.
func CommandForRune(r rune) (Command, bool) {
	switch r {
	case ' ':
		return Command{Action: ActionToggleRun}, true
	case 's', 'S':
		return Command{Action: ActionStep}, true
	case 'r', 'R':
		return Command{Action: ActionReset}, true
	case '1', '2', '3':
		return Command{Action: ActionGridSize, Arg: int(core.GridSizes()[r-'1'])}, true
	case '0':
		return Command{Action: ActionPreset, Arg: 0}, true
	case '4', '5', '6', '7', '8', '9':
		return Command{Action: ActionPreset, Arg: int(r-'4') + 1}, true
	case 'p', 'P':
		return Command{Action: ActionNextPreset}, true
	case 'c', 'C':
		return Command{Action: ActionCycleRule}, true
	case '+', '=':
		return Command{Action: ActionFaster}, true
	case '-', '_':
		return Command{Action: ActionSlower}, true
	case 't', 'T':
		return Command{Action: ActionToggleToric}, true
	case 'f', 'F':
		return Command{Action: ActionNextInput}, true
	case 'n', 'N':
		return Command{Action: ActionRandom}, true
	case 'q', 'Q':
		return Command{Action: ActionQuit}, true
	}
	return Command{}, false
}

// Controller applies commands to a service and paces running simulations.
// It is not safe for concurrent use; front-ends call it from their loop.
type Controller struct {
	svc    *sim.Service
	sound  sound.Player
	logger *log.Logger
	pacer  *core.FixedStep

	seed    int64
	density float64
	input   int
	status  string
}

// NewController wires svc to player. A nil player is silent and a nil
// logger uses log.Default().
func NewController(svc *sim.Service, player sound.Player, logger *log.Logger, seed int64, density float64) *Controller {
	if player == nil {
		player = sound.Silent{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		svc:     svc,
		sound:   player,
		logger:  logger,
		pacer:   core.NewFixedStep(svc.Tick()),
		seed:    seed,
		density: density,
		input:   -1,
	}
}

// Service returns the controlled service.
func (c *Controller) Service() *sim.Service { return c.svc }

// Status returns the message produced by the last command or step.
func (c *Controller) Status() string { return c.status }

// Do applies cmd and reports whether the front-end should keep running.
func (c *Controller) Do(cmd Command) bool {
	switch cmd.Action {
	case ActionQuit:
		return false
	case ActionToggleRun:
		running := c.svc.Toggle()
		c.pacer.Reset()
		c.sound.StartStop(running)
		if running {
			c.setStatus("running")
		} else {
			c.setStatus("paused")
		}
		return true
	case ActionStep:
		c.report(c.svc.Step())
	case ActionReset:
		c.svc.Reset()
		c.setStatus("reset")
	case ActionGridSize:
		size := core.GridSize(cmd.Arg)
		if err := c.svc.SetGridSize(size); err != nil {
			c.fail("resize", err)
			return true
		}
		c.setStatus("grid " + size.String())
	case ActionPreset:
		c.loadPreset(cmd.Arg)
	case ActionNextPreset:
		c.loadPreset((c.svc.PresetIndex() + 1) % presets.Len())
	case ActionCycleRule:
		c.setStatus("rule " + c.svc.CycleRule().String())
	case ActionFaster:
		if ms := c.svc.TickMs(); ms > sim.MinTickMs {
			c.svc.SetTickMs(ms - TickStep)
		}
		c.setStatus(fmt.Sprintf("tick %dms", c.svc.TickMs()))
	case ActionSlower:
		c.svc.SetTickMs(c.svc.TickMs() + TickStep)
		c.setStatus(fmt.Sprintf("tick %dms", c.svc.TickMs()))
	case ActionToggleToric:
		c.svc.SetToric(!c.svc.Toric())
		c.setStatus(fmt.Sprintf("toric %v", c.svc.Toric()))
	case ActionNextInput:
		c.nextInput()
	case ActionRandom:
		c.seed++
		c.svc.Randomize(c.seed, c.density)
		c.setStatus(fmt.Sprintf("random soup seed %d", c.seed))
	default:
		return true
	}
	c.sound.Click()
	return true
}

// Tick advances the service when it is running and the tick interval has
// elapsed at now. stepped is false when no step was taken.
func (c *Controller) Tick(now time.Time) (res sim.StepResult, stepped bool) {
	c.pacer.SetInterval(c.svc.Tick())
	if !c.svc.Running() {
		c.pacer.Reset()
		return 0, false
	}
	if !c.pacer.ShouldStepAt(now) {
		return 0, false
	}
	res = c.svc.Step()
	c.report(res)
	return res, true
}

// ToggleCell flips the alive flag at (r, c), ignoring clicks off the grid.
// Toric grids do not wrap edits.
func (c *Controller) ToggleCell(r, col int) {
	if !c.onGrid(r, col) {
		return
	}
	if err := c.svc.ToggleCell(r, col); err == nil {
		c.sound.Click()
	}
}

// ToggleObstacle flips the obstacle flag at (r, c), ignoring clicks off the
// grid.
func (c *Controller) ToggleObstacle(r, col int) {
	if !c.onGrid(r, col) {
		return
	}
	if err := c.svc.ToggleObstacle(r, col); err == nil {
		c.sound.Click()
	}
}

func (c *Controller) onGrid(r, col int) bool {
	return r >= 0 && col >= 0 && r < c.svc.Rows() && col < c.svc.Cols()
}

func (c *Controller) loadPreset(idx int) {
	if err := c.svc.LoadPreset(idx); err != nil {
		c.fail("preset", err)
		return
	}
	c.setStatus("preset " + c.svc.Presets()[idx])
}

func (c *Controller) nextInput() {
	files, err := c.svc.ListInputFiles()
	if err != nil {
		c.fail("list inputs", err)
		return
	}
	if len(files) == 0 {
		c.setStatus("no input files")
		return
	}
	c.input = (c.input + 1) % len(files)
	if err := c.svc.LoadFile(files[c.input]); err != nil {
		c.fail("load", err)
		return
	}
	c.setStatus("loaded " + files[c.input])
}

func (c *Controller) report(res sim.StepResult) {
	switch res {
	case sim.StepStabilized:
		c.sound.Stabilized()
		c.setStatus(fmt.Sprintf("stabilized at iteration %d", c.svc.Iteration()))
	case sim.StepTargetReached:
		c.setStatus(fmt.Sprintf("iteration target %d reached", c.svc.IterationTarget()))
	case sim.StepAdvanced:
		if t := c.svc.IterationTarget(); t > 0 && c.svc.Iteration() >= t {
			c.sound.StartStop(false)
			c.setStatus(fmt.Sprintf("iteration target %d reached", t))
		}
	}
}

func (c *Controller) fail(what string, err error) {
	c.logger.Printf("%s: %v", what, err)
	c.setStatus(what + ": " + err.Error())
}

func (c *Controller) setStatus(s string) { c.status = s }
