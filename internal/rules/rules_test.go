package rules

import "testing"

func TestCompileExactAndRegexPatterns(t *testing.T) {
	rules, err := Compile([]RawRule{
		{Class: "WindowsTerminal"},
		{Title: "regex:^scratch.*$"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !rules[0].Matcher.Class.Match("WindowsTerminal") {
		t.Errorf("exact class pattern did not match")
	}
	if rules[0].Matcher.Class.Match("OtherClass") {
		t.Errorf("exact class pattern matched unrelated class")
	}
	if !rules[1].Matcher.Title.Match("scratchpad") {
		t.Errorf("regex title pattern should match 'scratchpad'")
	}
	if rules[1].Matcher.Title.Match("notes") {
		t.Errorf("regex title pattern should not match 'notes'")
	}
}

func TestCompileRejectsBadRegex(t *testing.T) {
	_, err := Compile([]RawRule{{Title: "regex:("}})
	if err == nil {
		t.Fatalf("expected an error for an unbalanced regex")
	}
}

func TestCompileRejectsUnknownAction(t *testing.T) {
	_, err := Compile([]RawRule{{Actions: []RawAction{{Kind: "teleport"}}}})
	if err == nil {
		t.Fatalf("expected an error for an unknown action kind")
	}
}

func TestUnspecifiedFieldsAlwaysMatch(t *testing.T) {
	rules, err := Compile([]RawRule{{Class: "WindowsTerminal"}})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := rules[0].Matcher
	if !m.matches("any.exe", "any title", "WindowsTerminal") {
		t.Fatalf("expected match with unspecified process_name/title")
	}
	if m.matches("any.exe", "any title", "SomethingElse") {
		t.Fatalf("expected no match on wrong class")
	}
}

func TestResolveRuleAssignment(t *testing.T) {
	rules, err := Compile([]RawRule{
		{
			Class: "WindowsTerminal",
			Actions: []RawAction{
				{Kind: "workspace", Arg: "3"},
				{Kind: "float"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	engine := NewEngine(rules)
	decision := engine.Resolve("wt.exe", "My Terminal", "WindowsTerminal")

	if decision.Workspace != 3 {
		t.Errorf("Workspace = %d, want 3", decision.Workspace)
	}
	if !decision.Float {
		t.Errorf("expected Float action to be applied")
	}
	if decision.NoManage {
		t.Errorf("did not expect NoManage to be set")
	}
}

func TestResolveReportsNoManage(t *testing.T) {
	rules, err := Compile([]RawRule{
		{Class: "tooltip", Actions: []RawAction{{Kind: "workspace", Arg: "2"}, {Kind: "no_manage"}}},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	decision := NewEngine(rules).Resolve("x", "x", "tooltip")
	if !decision.NoManage {
		t.Fatalf("expected NoManage to be set")
	}
}

func TestLaterMatchedRuleOverwritesEarlier(t *testing.T) {
	rules, err := Compile([]RawRule{
		{Class: "Term", Actions: []RawAction{{Kind: "workspace", Arg: "1"}}},
		{Title: "regex:.*"}, // matches everything, declared second
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	rules[1].Actions = []Action{{Kind: ActionWorkspace, IntArg: 5}}

	decision := NewEngine(rules).Resolve("p", "anything", "Term")
	if decision.Workspace != 5 {
		t.Fatalf("Workspace = %d, want 5 (later rule should win)", decision.Workspace)
	}
}

func TestOpacityAndPinAreLoggedOnly(t *testing.T) {
	rules, err := Compile([]RawRule{
		{Class: "X", Actions: []RawAction{{Kind: "opacity", Arg: "0.9"}, {Kind: "pin"}}},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	decision := NewEngine(rules).Resolve("", "", "X")
	if decision.Opacity == nil || *decision.Opacity != 0.9 {
		t.Fatalf("expected Opacity to carry 0.9, got %v", decision.Opacity)
	}
	if !decision.Pin {
		t.Fatalf("expected Pin to be set")
	}
}
