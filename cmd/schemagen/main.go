// Command schemagen regenerates the JSON schema inbound commands are validated against.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/protocol"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "internal/protocol/commands.schema.json", "path to write the JSON schema")
	flag.Parse()

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

// buildSchema reflects each command type and combines them as oneOf alternatives.
func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}

	commands := []any{
		protocol.CreateObstacle{},
		protocol.UpdateParameters{},
		protocol.ClearObstacles{},
	}
	alternatives := make([]*jsonschema.Schema, 0, len(commands))
	for _, cmd := range commands {
		s := reflector.ReflectFromType(reflect.TypeOf(cmd))
		s.Version = ""
		if _, ok := cmd.(protocol.UpdateParameters); ok {
			boundParameters(s)
		}
		alternatives = append(alternatives, s)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		OneOf:       alternatives,
		Title:       "Flock client commands",
		Description: "Inbound frames accepted on the live connection",
	}
}

// Distances and the speed cap must be strictly positive; strengths may be zero.
var positiveParameters = map[string]bool{
	"max_speed":                   true,
	"obstacle_avoidance_distance": true,
	"separation_distance":         true,
	"alignment_distance":          true,
	"cohesion_distance":           true,
}

// boundParameters adds numeric lower bounds to the parameters object of the
// UpdateParameters alternative. The reflector only knows the draft-04 boolean
// form of exclusiveMinimum, so the 2020-12 keywords go in as extras.
func boundParameters(update *jsonschema.Schema) {
	v, ok := update.Properties.Get("parameters")
	if !ok {
		return
	}
	params, ok := v.(*jsonschema.Schema)
	if !ok || params.Properties == nil {
		return
	}
	for _, name := range params.Properties.Keys() {
		v, _ := params.Properties.Get(name)
		prop, ok := v.(*jsonschema.Schema)
		if !ok {
			continue
		}
		if prop.Extras == nil {
			prop.Extras = map[string]interface{}{}
		}
		if positiveParameters[name] {
			prop.Extras["exclusiveMinimum"] = 0
		} else {
			prop.Extras["minimum"] = 0
		}
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
