package shortcut

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "shortcut.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ValidationError reports a shortcut document that does not match the
// schema.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid shortcut file: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

type fileEntry struct {
	Trigger     string `json:"trigger" yaml:"trigger"`
	Replacement string `json:"replacement" yaml:"replacement"`
	When        string `json:"when,omitempty" yaml:"when,omitempty"`
	Case        string `json:"case,omitempty" yaml:"case,omitempty"`
	Method      string `json:"method,omitempty" yaml:"method,omitempty"`
}

type fileDoc struct {
	Shortcuts []fileEntry `json:"shortcuts" yaml:"shortcuts"`
}

// LoadFile reads a shortcut file. The format follows the extension: .tsv
// and .txt are tab separated, .yaml/.yml and .json are structured.
func LoadFile(path string) ([]Shortcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open shortcuts %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".json":
		return ParseJSON(path, data)
	default:
		return ParseTSV(path, bytes.NewReader(data))
	}
}

// ParseTSV reads "trigger<TAB>replacement" lines. Lines starting with # or ;
// are comments; malformed lines are skipped.
func ParseTSV(source string, r io.Reader) ([]Shortcut, error) {
	var out []Shortcut
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		trigger := strings.TrimSpace(parts[0])
		replacement := strings.TrimSpace(parts[1])
		if trigger == "" || replacement == "" {
			continue
		}
		out = append(out, Shortcut{Trigger: trigger, Replacement: replacement})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read shortcuts %s: %w", source, err)
	}
	return out, nil
}

func ParseJSON(source string, data []byte) ([]Shortcut, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse shortcuts %s: %w", source, err)
	}
	return decode(source, instance)
}

// ParseYAML validates the document as JSON, so YAML and JSON files share
// one schema.
func ParseYAML(source string, data []byte) ([]Shortcut, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shortcuts %s: %w", source, err)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse shortcuts %s: %w", source, err)
	}
	return ParseJSON(source, encoded)
}

func decode(source string, instance any) ([]Shortcut, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(instance); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	encoded, err := json.Marshal(instance)
	if err != nil {
		return nil, fmt.Errorf("decode shortcuts %s: %w", source, err)
	}
	var doc fileDoc
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("decode shortcuts %s: %w", source, err)
	}
	out := make([]Shortcut, 0, len(doc.Shortcuts))
	for _, e := range doc.Shortcuts {
		s := Shortcut{Trigger: e.Trigger, Replacement: e.Replacement}
		if e.When == "immediate" {
			s.When = Immediate
		}
		if e.Case == "exact" {
			s.Case = Exact
		}
		switch e.Method {
		case "telex":
			s.Scope = ScopeTelex
		case "vni":
			s.Scope = ScopeVNI
		}
		out = append(out, s)
	}
	return out, nil
}

// Load fills a new table from a file.
func Load(path string) (*Table, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	t := NewTable()
	for _, s := range entries {
		if err := t.Add(s); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}
