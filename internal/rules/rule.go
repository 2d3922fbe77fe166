// Package rules compiles and evaluates the configured window-matching
// rules, producing a wsmanager.AdmissionDecision for each newly
// discovered window.
package rules

import "regexp"

// Pattern matches a single window attribute (process name, title, or
// class) either by exact string equality or, when the source string was
// prefixed "regex:", by a compiled regular expression. A nil Pattern
// always matches: unspecified matcher fields match every window.
type Pattern struct {
	exact string
	re    *regexp.Regexp
}

// Match reports whether s satisfies p. A nil receiver always matches.
func (p *Pattern) Match(s string) bool {
	if p == nil {
		return true
	}
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return p.exact == s
}

// Matcher holds the (optional) per-field predicates a rule tests. All
// specified fields must match for the rule to apply.
type Matcher struct {
	ProcessName *Pattern
	Title       *Pattern
	Class       *Pattern
}

func (m Matcher) matches(processName, title, class string) bool {
	return m.ProcessName.Match(processName) && m.Title.Match(title) && m.Class.Match(class)
}

// ActionKind enumerates the RuleAction variants a rule can apply.
type ActionKind string

const (
	ActionFloat      ActionKind = "float"
	ActionTile       ActionKind = "tile"
	ActionWorkspace  ActionKind = "workspace"
	ActionMonitor    ActionKind = "monitor"
	ActionFullscreen ActionKind = "fullscreen"
	ActionNoFocus    ActionKind = "no_focus"
	ActionNoManage   ActionKind = "no_manage"
	ActionOpacity    ActionKind = "opacity"
	ActionPin        ActionKind = "pin"
)

// Action is one element of a rule's action list. IntArg carries the
// Workspace/Monitor id; FloatArg carries the Opacity value.
type Action struct {
	Kind     ActionKind
	IntArg   int
	FloatArg float64
}

// Rule is one compiled configuration entry: an optional matcher on each
// of process-name/title/class, and an ordered action list.
type Rule struct {
	Matcher Matcher
	Actions []Action
}
