package sim

import (
	"strconv"

	"mad-life/internal/core"
)

// Parameters snapshots the service state for HUDs and status lines.
func (s *Service) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("rows", "Rows", s.grid.Rows()),
				intParam("cols", "Cols", s.grid.Cols()),
				boolParam("toric", "Toric", s.grid.Toric()),
				intParam("alive", "Alive cells", s.grid.AliveCount()),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				stringParam("rule", "Rule", s.ruleType.String()),
				stringParam("neighborhood", "Neighborhood", s.nbhdType.String()),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				boolParam("running", "Running", s.Running()),
				intParam("iteration", "Iteration", s.iteration),
				intParam("tick_ms", "Tick (ms)", s.TickMs()),
				intParam("iteration_target", "Iteration target", s.iterationTarget),
				intParam("save_iterations", "Save first N", s.saveIterations),
				intParam("workers", "Workers", s.workers),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values a HUD may adjust with +/- buttons.
func (s *Service) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "tick_ms", Label: "Tick (ms)", Type: core.ParamTypeInt, Step: 10, Min: MinTickMs, HasMin: true},
		{Key: "rows", Label: "Rows", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 200, HasMax: true},
		{Key: "cols", Label: "Cols", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 200, HasMax: true},
		{Key: "iteration_target", Label: "Iteration target", Type: core.ParamTypeInt, Step: 10, Min: 0, HasMin: true},
		{Key: "save_iterations", Label: "Save first N", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
	}
}

// SetIntParameter applies an integer parameter by key and reports whether
// the key was recognized and the value accepted.
func (s *Service) SetIntParameter(key string, value int) bool {
	switch key {
	case "tick_ms":
		s.SetTickMs(value)
	case "rows":
		return s.SetGridDimensions(value, s.grid.Cols()) == nil
	case "cols":
		return s.SetGridDimensions(s.grid.Rows(), value) == nil
	case "iteration_target":
		s.SetIterationTarget(value)
	case "save_iterations":
		s.SetSaveIterations(value)
	case "workers":
		s.SetWorkers(value)
	default:
		return false
	}
	return true
}

// SetBoolParameter applies a boolean parameter by key.
func (s *Service) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "toric":
		s.SetToric(value)
	case "running":
		s.running.Store(value)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
