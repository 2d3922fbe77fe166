package rules

import "github.com/1broseidon/termtile/internal/wsmanager"

// Engine evaluates a compiled rule set against admitted windows.
type Engine struct {
	rules []Rule
}

// NewEngine wraps an already-compiled rule set.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Resolve evaluates every rule in declaration order against
// (processName, title, class) and collects the union of actions from
// every match: within each action class (Workspace, Monitor, Float|Tile,
// NoManage, Fullscreen, NoFocus, Opacity, Pin) the later-matched rule's
// action overwrites the earlier one's.
func (e *Engine) Resolve(processName, title, class string) wsmanager.AdmissionDecision {
	var decision wsmanager.AdmissionDecision

	for _, rule := range e.rules {
		if !rule.Matcher.matches(processName, title, class) {
			continue
		}
		for _, a := range rule.Actions {
			switch a.Kind {
			case ActionWorkspace:
				decision.Workspace = a.IntArg
			case ActionMonitor:
				decision.Monitor = a.IntArg
			case ActionFloat:
				decision.Float = true
			case ActionTile:
				decision.Float = false
			case ActionNoManage:
				decision.NoManage = true
			case ActionFullscreen:
				decision.Fullscreen = true
			case ActionNoFocus:
				decision.NoFocus = true
			case ActionOpacity:
				v := a.FloatArg
				decision.Opacity = &v
			case ActionPin:
				decision.Pin = true
			}
		}
	}

	return decision
}
