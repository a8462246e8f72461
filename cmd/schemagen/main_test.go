package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/protocol"
	"github.com/lao-tseu-is-alive/go-flock-arrows/pkg/flocking"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

func compileGenerated(t *testing.T) *jsonschema.Schema {
	t.Helper()
	out := filepath.Join(t.TempDir(), "nested", "commands.schema.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("writeSchema: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	schema, err := jsonschema.CompileString("generated.schema.json", string(data))
	if err != nil {
		t.Fatalf("generated schema does not compile: %v", err)
	}
	return schema
}

func decode(t *testing.T, frame string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(frame)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("bad fixture %s: %v", frame, err)
	}
	return v
}

// withParameter re-encodes an UpdateParameters frame with one parameter replaced.
func withParameter(t *testing.T, frame []byte, name string, value float64) string {
	t.Helper()
	var msg map[string]any
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatal(err)
	}
	msg["parameters"].(map[string]any)[name] = value
	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

// The generated schema must accept exactly what the checked-in one accepts.
func TestBuildSchema_MatchesCheckedIn(t *testing.T) {
	generated := compileGenerated(t)

	params, err := json.Marshal(protocol.NewUpdateParameters(flocking.DefaultParameters()))
	if err != nil {
		t.Fatal(err)
	}
	frames := []struct {
		frame string
		valid bool
	}{
		{`{"type":"CreateObstacle","x":10,"y":20.5}`, true},
		{`{"type":"CreateObstacle","x":10,"y":20,"extra":true}`, true},
		{`{"type":"ClearObstacles"}`, true},
		{string(params), true},
		{`{"type":"CreateObstacle","x":10}`, false},
		{`{"type":"CreateObstacle","x":"10","y":1}`, false},
		{`{"type":"UpdateParameters","parameters":{"max_speed":3}}`, false},
		{withParameter(t, params, "obstacle_avoidance_distance", 0), false},
		{withParameter(t, params, "cohesion_distance", -5), false},
		{withParameter(t, params, "max_speed", 0), false},
		{withParameter(t, params, "alignment_strength", 0), true},
		{withParameter(t, params, "separation_strength", -0.1), false},
		{`{"type":"Explode"}`, false},
		{`{"x":1,"y":2}`, false},
		{`[]`, false},
	}
	for _, f := range frames {
		err := generated.Validate(decode(t, f.frame))
		if (err == nil) != f.valid {
			t.Errorf("generated schema on %s: err = %v; want valid=%v", f.frame, err, f.valid)
		}
		_, decodeErr := protocol.DecodeCommand([]byte(f.frame))
		if (decodeErr == nil) != f.valid {
			t.Errorf("DecodeCommand(%s) = %v; want valid=%v", f.frame, decodeErr, f.valid)
		}
	}
}

func TestBuildSchema_Shape(t *testing.T) {
	schema := buildSchema()
	if len(schema.OneOf) != 3 {
		t.Fatalf("oneOf has %d alternatives; want 3", len(schema.OneOf))
	}
	for i, alt := range schema.OneOf {
		if alt.Version != "" {
			t.Errorf("alternative %d repeats $schema", i)
		}
		if alt.Type != "object" {
			t.Errorf("alternative %d has type %q", i, alt.Type)
		}
	}
}
