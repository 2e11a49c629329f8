package shl

import (
	"encoding/json"
	"testing"
)

func TestIntOrStringDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"number", `7`, 7},
		{"quoted number", `"7"`, 7},
		{"float", `"7.0"`, 7},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"garbage", `"N/A"`, 0},
		{"negative string", `"-2"`, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n IntOrString
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Int() != tt.want {
				t.Errorf("decoded %s = %d, want %d", tt.input, n.Int(), tt.want)
			}
		})
	}
}

func TestPlayByPlayDecoding(t *testing.T) {
	body := `{
		"eventId": 42,
		"revision": 3,
		"period": "2",
		"gametime": "27:14",
		"description": "Mål!",
		"class": "Goal",
		"team": "LHF",
		"location": {"x": 12.5, "y": -3},
		"extra": {
			"scorerLong": "40 Marcus Nilsson",
			"teamAdvantage": "PP1",
			"assist": "29 Erik Lindgren",
			"homeForward": "2",
			"homeAgainst": 1
		}
	}`

	var event PlayByPlay
	if err := json.Unmarshal([]byte(body), &event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.EventID != 42 || event.Revision != 3 {
		t.Errorf("identity = (%d, %d), want (42, 3)", event.EventID, event.Revision)
	}
	if event.Period.Int() != 2 {
		t.Errorf("Period = %d, want 2 (string-encoded)", event.Period.Int())
	}
	if event.Class != ClassGoal {
		t.Errorf("Class = %q", event.Class)
	}
	if event.Extra.HomeForward.Int() != 2 || event.Extra.HomeAgainst.Int() != 1 {
		t.Errorf("score extras = %d/%d, want 2/1", event.Extra.HomeForward.Int(), event.Extra.HomeAgainst.Int())
	}
}
