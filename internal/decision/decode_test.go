package decision

import (
	"errors"
	"testing"

	"github.com/pwspen/vlmcar/internal/shared"
)

func TestDecode_DiscreteValid(t *testing.T) {
	raw := []byte(`{"command": "forward", "notes": "heading for the doorway"}`)

	dec, err := Decode(SchemaDiscrete, raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dec.Discrete == nil {
		t.Fatal("expected discrete variant to be set")
	}
	if dec.Parametric != nil {
		t.Error("parametric variant should be nil")
	}
	if dec.Discrete.Command != CommandForward {
		t.Errorf("expected forward, got %s", dec.Discrete.Command)
	}
	if dec.Rationale() != "heading for the doorway" {
		t.Errorf("unexpected rationale %q", dec.Rationale())
	}
}

func TestDecode_DiscreteAllCommands(t *testing.T) {
	for _, cmd := range []Command{CommandForward, CommandReverse, CommandRotateRight, CommandRotateLeft} {
		raw := []byte(`{"command": "` + string(cmd) + `", "notes": "n"}`)
		dec, err := Decode(SchemaDiscrete, raw)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", cmd, err)
		}
		if dec.Discrete.Command != cmd {
			t.Errorf("expected %s, got %s", cmd, dec.Discrete.Command)
		}
	}
}

func TestDecode_DiscreteUnknownCommand(t *testing.T) {
	raw := []byte(`{"command": "launch", "notes": "n"}`)

	_, err := Decode(SchemaDiscrete, raw)
	if !errors.Is(err, shared.ErrMalformedDecision) {
		t.Fatalf("expected ErrMalformedDecision, got %v", err)
	}
}

func TestDecode_DiscreteInvalidJSON(t *testing.T) {
	_, err := Decode(SchemaDiscrete, []byte("not json"))
	if !errors.Is(err, shared.ErrMalformedDecision) {
		t.Fatalf("expected ErrMalformedDecision, got %v", err)
	}
}

func TestDecode_ParametricValid(t *testing.T) {
	raw := []byte(`{"kind": "rotate", "magnitude": -90, "description": "a hallway", "notes": "turning around"}`)

	dec, err := Decode(SchemaParametric, raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dec.Parametric == nil {
		t.Fatal("expected parametric variant to be set")
	}
	if dec.Parametric.Magnitude != -90 {
		t.Errorf("expected magnitude -90, got %f", dec.Parametric.Magnitude)
	}
	if dec.Description() != "a hallway" {
		t.Errorf("unexpected description %q", dec.Description())
	}
}

func TestDecode_ParametricBounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"move at upper bound", `{"kind": "move", "magnitude": 1.0, "notes": "n"}`, false},
		{"move at lower bound", `{"kind": "move", "magnitude": -1.0, "notes": "n"}`, false},
		{"move too far", `{"kind": "move", "magnitude": 1.5, "notes": "n"}`, true},
		{"move too far back", `{"kind": "move", "magnitude": -2, "notes": "n"}`, true},
		{"rotate at bound", `{"kind": "rotate", "magnitude": 180, "notes": "n"}`, false},
		{"rotate past bound", `{"kind": "rotate", "magnitude": 181, "notes": "n"}`, true},
		{"rotate past negative bound", `{"kind": "rotate", "magnitude": -180.5, "notes": "n"}`, true},
		{"unknown kind", `{"kind": "jump", "magnitude": 0.5, "notes": "n"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(SchemaParametric, []byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, shared.ErrMalformedDecision) {
					t.Errorf("expected ErrMalformedDecision, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecode_UnknownSchema(t *testing.T) {
	_, err := Decode(Schema("freeform"), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for unknown schema")
	}
	if errors.Is(err, shared.ErrMalformedDecision) {
		t.Error("unknown schema is a configuration error, not a malformed response")
	}
}

func TestDecision_Action(t *testing.T) {
	tests := []struct {
		name string
		dec  *Decision
		want string
	}{
		{"discrete", &Decision{Discrete: &DiscreteCommand{Command: CommandRotateLeft}}, "rot_left"},
		{"move", &Decision{Parametric: &ParametricCommand{Kind: KindMove, Magnitude: 0.5}}, "move 0.50 m"},
		{"rotate ccw", &Decision{Parametric: &ParametricCommand{Kind: KindRotate, Magnitude: -90}}, "rotate -90.0 deg"},
		{"empty", &Decision{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dec.Action(); got != tt.want {
				t.Errorf("Action() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecision_LogLine(t *testing.T) {
	dec := &Decision{Discrete: &DiscreteCommand{Command: CommandForward, Notes: "open floor ahead"}}
	want := "forward (open floor ahead)"
	if got := dec.LogLine(); got != want {
		t.Errorf("LogLine() = %q, want %q", got, want)
	}
	if dec.LogLine() != dec.LogLine() {
		t.Error("LogLine must be deterministic")
	}
}
