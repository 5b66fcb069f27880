package ui

import "mad-life/internal/core"

// adjusted clamps value+direction*step into the control's bounds. ok is false
// when the value already sits on the bound in that direction.
func adjusted(ctrl core.ParameterControl, value, direction int) (int, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := value + direction*step
	if ctrl.HasMin && target < ctrl.Min {
		if value <= ctrl.Min {
			return value, false
		}
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		if value >= ctrl.Max {
			return value, false
		}
		target = ctrl.Max
	}
	return target, true
}
