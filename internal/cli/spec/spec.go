package spec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml commands.schema.json
var embeddedFS embed.FS

// Spec is the canonical CLI command specification.
type Spec struct {
	Version     int       `yaml:"version"`
	App         AppSpec   `yaml:"app"`
	GlobalFlags []Flag    `yaml:"global_flags"`
	Commands    []Command `yaml:"commands"`
}

// AppSpec configures the top-level CLI app.
type AppSpec struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
}

// Flag describes a CLI flag.
type Flag struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	Default     any      `yaml:"default"`
	Enum        []string `yaml:"enum"`
	Description string   `yaml:"description"`
	Env         string   `yaml:"env"`
	Hidden      bool     `yaml:"hidden"`
}

// Arg describes a positional argument.
type Arg struct {
	Name        string `yaml:"name"`
	Required    bool   `yaml:"required"`
	Variadic    bool   `yaml:"variadic"`
	Description string `yaml:"description"`
}

// Command describes a CLI command.
type Command struct {
	Name        string   `yaml:"name"`
	ID          string   `yaml:"id"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Aliases     []string `yaml:"aliases"`
	Flags       []Flag   `yaml:"flags"`
	Args        []Arg    `yaml:"args"`
	// Kitten commands receive their arguments untouched; see internal/kitten.
	SkipFlagParsing bool `yaml:"skip_flag_parsing"`
	JSON            bool `yaml:"json"`
	Hidden          bool `yaml:"hidden"`
}

// LoadDefault loads the embedded spec and validates it.
func LoadDefault() (*Spec, error) {
	data, err := embeddedFS.ReadFile("commands.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded spec: %w", err)
	}
	return Parse(data)
}

// Parse loads a spec from YAML bytes and validates it against the embedded schema.
func Parse(data []byte) (*Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("spec is empty")
	}
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse spec yaml: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the YAML spec against the embedded JSON schema.
func Validate(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("spec is empty")
	}
	schemaBytes, err := embeddedFS.ReadFile("commands.schema.json")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaBytes, &schemaDoc); err != nil {
		return fmt.Errorf("parse schema json: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("commands.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile("commands.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	payload, err := yamlToJSON(data)
	if err != nil {
		return fmt.Errorf("serialize spec: %w", err)
	}
	var payloadDoc any
	if err := json.Unmarshal(payload, &payloadDoc); err != nil {
		return fmt.Errorf("parse spec json: %w", err)
	}
	if err := schema.Validate(payloadDoc); err != nil {
		return fmt.Errorf("spec schema validation: %w", err)
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	normalized, err := normalizeYAML(raw)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return payload, nil
}

func normalizeYAML(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			strKey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("invalid yaml map key: %T", key)
			}
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[strKey] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			normalized, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	default:
		return value, nil
	}
}

// FindByID returns the command with the matching ID.
func (s *Spec) FindByID(id string) *Command {
	id = strings.TrimSpace(id)
	if id == "" || s == nil {
		return nil
	}
	for _, cmd := range s.Commands {
		if cmd.ID == id {
			found := cmd
			return &found
		}
	}
	return nil
}
