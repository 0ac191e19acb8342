// Package schema derives JSON Schema documents from tagged Go structs.
//
// Field names come from the json tag. The schema tag carries constraints:
//
//	schema:"required,enum=a|b,minLength=1,maxItems=10,default=v1"
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const Draft = "https://json-schema.org/draft/2020-12/schema"

type JSONSchema struct {
	Schema      string                 `json:"$schema,omitempty"`
	ID          string                 `json:"$id,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Type        string                 `json:"type"`
	Required    []string               `json:"required,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Items       *JSONSchema            `json:"items,omitempty"`
	Enum        []any                  `json:"enum,omitempty"`
	Default     any                    `json:"default,omitempty"`
	Pattern     string                 `json:"pattern,omitempty"`
	MinLength   *int                   `json:"minLength,omitempty"`
	MaxLength   *int                   `json:"maxLength,omitempty"`
	MinItems    *int                   `json:"minItems,omitempty"`
	MaxItems    *int                   `json:"maxItems,omitempty"`
	Examples    []any                  `json:"examples,omitempty"`
}

type Generator struct {
	idBase string
}

type Option func(*Generator)

// WithIDBase sets the prefix of the root $id. The lowercased type name is appended.
func WithIDBase(base string) Option {
	return func(g *Generator) {
		g.idBase = strings.TrimSuffix(base, "/")
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{idBase: "https://schemas.reg-hunter.io"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Generate(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	root, err := g.forType(t)
	if err != nil {
		return nil, err
	}
	root.Schema = Draft
	if t.Name() != "" {
		root.Title = t.Name()
		root.ID = fmt.Sprintf("%s/%s", g.idBase, strings.ToLower(t.Name()))
	}
	return root, nil
}

// GenerateJSON renders the schema of v's type as indented JSON.
func (g *Generator) GenerateJSON(v any) ([]byte, error) {
	s, err := g.Generate(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return b, nil
}

func (g *Generator) forType(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.forStruct(t)
	case reflect.Slice, reflect.Array:
		items, err := g.forType(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		return &JSONSchema{Type: "array", Items: items}, nil
	case reflect.String:
		return &JSONSchema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &JSONSchema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}, nil
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *Generator) forStruct(t reflect.Type) (*JSONSchema, error) {
	s := &JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "" {
			continue
		}

		fs, err := g.forType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if desc := field.Tag.Get("description"); desc != "" {
			fs.Description = desc
		}
		if ex := field.Tag.Get("example"); ex != "" && fs.Type == "string" {
			fs.Examples = []any{ex}
		}

		required := applyTag(field.Tag.Get("schema"), fs)
		if required {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = fs
	}

	return s, nil
}

// fieldName returns "" for fields hidden from JSON.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(field.Name[:1]) + field.Name[1:]
	}
	return name
}

// applyTag copies constraints from a schema tag and reports whether the field is required.
func applyTag(tag string, s *JSONSchema) bool {
	if tag == "" {
		return false
	}

	required := false
	for _, part := range strings.Split(tag, ",") {
		key, val, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "required":
			required = true
		case "enum":
			for _, e := range strings.Split(val, "|") {
				s.Enum = append(s.Enum, e)
			}
		case "default":
			s.Default = val
		case "pattern":
			s.Pattern = val
		case "minLength":
			s.MinLength = atoi(val)
		case "maxLength":
			s.MaxLength = atoi(val)
		case "minItems":
			s.MinItems = atoi(val)
		case "maxItems":
			s.MaxItems = atoi(val)
		}
	}
	return required
}

func atoi(v string) *int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
