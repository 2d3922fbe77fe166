package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/1broseidon/termtile/internal/wmerr"
)

// RawRule is one [[rules]] table as read from TOML configuration (spec
// §6): each matcher field is an optional string, "regex:"-prefixed for
// a compiled-regex match and bare otherwise for exact equality.
type RawRule struct {
	ProcessName string      `toml:"process_name"`
	Title       string      `toml:"title"`
	Class       string      `toml:"class"`
	Actions     []RawAction `toml:"actions"`
}

// RawAction is one entry of a rule's actions list. Kind is one of the
// lowercase_snake_case spellings ActionKind uses; Arg carries the
// Workspace/Monitor id or Opacity value as a string, empty otherwise.
type RawAction struct {
	Kind string `toml:"kind"`
	Arg  string `toml:"arg"`
}

// Compile builds the compiled rule set from raw configuration, compiling
// every "regex:"-prefixed pattern once up front rather than on each
// match. The first bad pattern or action aborts with a RuleCompileError
// identifying it.
func Compile(raws []RawRule) ([]Rule, error) {
	out := make([]Rule, 0, len(raws))
	for i, raw := range raws {
		rule, err := compileOne(raw)
		if err != nil {
			return nil, wmerr.Wrap(wmerr.RuleCompileError, fmt.Sprintf("rule %d", i), err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func compileOne(raw RawRule) (Rule, error) {
	processName, err := compilePattern(raw.ProcessName)
	if err != nil {
		return Rule{}, fmt.Errorf("process_name: %w", err)
	}
	title, err := compilePattern(raw.Title)
	if err != nil {
		return Rule{}, fmt.Errorf("title: %w", err)
	}
	class, err := compilePattern(raw.Class)
	if err != nil {
		return Rule{}, fmt.Errorf("class: %w", err)
	}

	actions := make([]Action, 0, len(raw.Actions))
	for i, ra := range raw.Actions {
		action, err := compileAction(ra)
		if err != nil {
			return Rule{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}

	return Rule{
		Matcher: Matcher{ProcessName: processName, Title: title, Class: class},
		Actions: actions,
	}, nil
}

func compilePattern(s string) (*Pattern, error) {
	if s == "" {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(s, "regex:"); ok {
		re, err := regexp.Compile(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", rest, err)
		}
		return &Pattern{re: re}, nil
	}
	return &Pattern{exact: s}, nil
}

func compileAction(raw RawAction) (Action, error) {
	switch ActionKind(raw.Kind) {
	case ActionFloat, ActionTile, ActionFullscreen, ActionNoFocus, ActionNoManage, ActionPin:
		return Action{Kind: ActionKind(raw.Kind)}, nil
	case ActionWorkspace, ActionMonitor:
		n, err := strconv.Atoi(raw.Arg)
		if err != nil {
			return Action{}, fmt.Errorf("%s requires an integer argument, got %q", raw.Kind, raw.Arg)
		}
		return Action{Kind: ActionKind(raw.Kind), IntArg: n}, nil
	case ActionOpacity:
		f, err := strconv.ParseFloat(raw.Arg, 64)
		if err != nil {
			return Action{}, fmt.Errorf("opacity requires a float argument, got %q", raw.Arg)
		}
		return Action{Kind: ActionOpacity, FloatArg: f}, nil
	default:
		return Action{}, fmt.Errorf("unknown rule action %q", raw.Kind)
	}
}
