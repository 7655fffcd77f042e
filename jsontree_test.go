package editor

import (
	"strings"
	"testing"
)

const settingsFixture = `{
	"game_name": "Team Principal Manager",
	"version": "0.1",
	"difficulty": {
		"ai_strength": 80,
		"failure_rate": 0.35,
		"hardcore": false
	},
	"starting_budgets_m": [120, 80.5, 40],
	"teams": [
		{"slots": 2, "reserve": true},
		{"slots": 2, "reserve": false}
	],
	"notes": null
}`

func TestParseDocumentPreservesKeyOrder(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"game_name", "version", "difficulty", "starting_budgets_m", "teams", "notes"}

	if len(doc.Keys) != len(expected) {
		t.Fatalf("expected %d top level keys, got %d", len(expected), len(doc.Keys))
	}

	for i, key := range expected {
		if doc.Keys[i] != key {
			t.Errorf("key %d: expected %s, got %s", i, key, doc.Keys[i])
		}
	}
}

func TestDocumentRoundTripPreservesTypes(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	out, err := doc.MarshalJSON()

	if err != nil {
		t.Fatal(err)
	}

	encoded := string(out)

	// ints must not grow a decimal point, floats must not lose theirs
	if !strings.Contains(encoded, `"ai_strength":80`) {
		t.Errorf("ai_strength should stay an integer, got: %s", encoded)
	}

	if !strings.Contains(encoded, `"failure_rate":0.35`) {
		t.Errorf("failure_rate should stay a float, got: %s", encoded)
	}

	if !strings.Contains(encoded, `"hardcore":false`) {
		t.Errorf("hardcore should stay a boolean, got: %s", encoded)
	}

	if !strings.Contains(encoded, `"notes":null`) {
		t.Errorf("notes should stay null, got: %s", encoded)
	}

	reparsed, err := ParseDocument(out)

	if err != nil {
		t.Fatal(err)
	}

	if reparsed.Children["difficulty"].Children["ai_strength"].Kind != IntNode {
		t.Error("ai_strength should reparse as an integer")
	}

	if reparsed.Children["difficulty"].Children["failure_rate"].Kind != FloatNode {
		t.Error("failure_rate should reparse as a float")
	}
}

func TestDocumentPathsAreUnique(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	paths := doc.Paths("")

	seen := make(map[string]bool)

	for _, path := range paths {
		if seen[path] {
			t.Errorf("duplicate field path: %s", path)
		}

		seen[path] = true
	}

	for _, expected := range []string{
		"game_name",
		"difficulty.ai_strength",
		"starting_budgets_m[1]",
		"teams[0].slots",
		"teams[1].reserve",
	} {
		if !seen[expected] {
			t.Errorf("expected path %s to be present, paths: %v", expected, paths)
		}
	}
}

func TestApplyCoercesToOriginalTypes(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	doc.Apply(map[string]string{
		"difficulty.ai_strength":  "95",
		"difficulty.failure_rate": "0.5",
		"difficulty.hardcore":     "True",
		"game_name":               "Renamed",
	}, "")

	difficulty := doc.Children["difficulty"]

	if difficulty.Children["ai_strength"].Int != 95 {
		t.Errorf("expected ai_strength 95, got %d", difficulty.Children["ai_strength"].Int)
	}

	if difficulty.Children["ai_strength"].Kind != IntNode {
		t.Error("ai_strength should remain an integer after apply")
	}

	if difficulty.Children["failure_rate"].Float != 0.5 {
		t.Errorf("expected failure_rate 0.5, got %f", difficulty.Children["failure_rate"].Float)
	}

	if !difficulty.Children["hardcore"].Bool {
		t.Error("hardcore should be true after applying the True literal")
	}

	if doc.Children["game_name"].Str != "Renamed" {
		t.Errorf("expected game_name Renamed, got %s", doc.Children["game_name"].Str)
	}
}

func TestApplyKeepsOldValueOnBadNumber(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	doc.Apply(map[string]string{
		"difficulty.ai_strength": "not a number",
	}, "")

	if doc.Children["difficulty"].Children["ai_strength"].Int != 80 {
		t.Error("an unparseable edit should leave the original value in place")
	}
}

func TestApplyIgnoresAbsentPaths(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	doc.Apply(map[string]string{
		"difficulty.no_such_field": "1",
	}, "")

	if len(doc.Children["difficulty"].Keys) != 3 {
		t.Error("applying an unknown path should not add keys")
	}
}

func TestApplyPromotesNullToString(t *testing.T) {
	doc, err := ParseDocument([]byte(settingsFixture))

	if err != nil {
		t.Fatal(err)
	}

	doc.Apply(map[string]string{"notes": "hello"}, "")

	notes := doc.Children["notes"]

	if notes.Kind != StringNode || notes.Str != "hello" {
		t.Errorf("editing a null leaf should produce a string, got kind %d value %q", notes.Kind, notes.Str)
	}

	// an untouched null stays null
	doc2, _ := ParseDocument([]byte(settingsFixture))
	doc2.Apply(map[string]string{"notes": ""}, "")

	if doc2.Children["notes"].Kind != NullNode {
		t.Error("an empty edit should leave a null leaf null")
	}
}

func TestLabelise(t *testing.T) {
	cases := map[string]string{
		"ai_strength": "Ai strength",
		"game_name":   "Game name",
		"version":     "Version",
		"":            "",
	}

	for in, expected := range cases {
		if got := labelise(in); got != expected {
			t.Errorf("labelise(%q): expected %q, got %q", in, expected, got)
		}
	}
}
