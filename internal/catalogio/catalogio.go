// Package catalogio loads and saves GOAP action catalogs, states, and
// goal masks as YAML documents, standing in for the task-factory modules
// the core goap package treats as an external concern.
package catalogio

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goapcore/goap/internal/goap"
)

// wildcardLiteral is the only string value a mask document may use to
// mean "don't care"; it is never valid in a state document.
const wildcardLiteral = "*"

// CatalogDocument is the YAML shape of an action catalog file: a
// declared universe of keys plus a map of named actions.
type CatalogDocument struct {
	Keys    []string                 `yaml:"keys"`
	Actions map[string]ActionDocument `yaml:"actions"`
}

// ActionDocument is one action entry within a CatalogDocument.
type ActionDocument struct {
	Cost       float64        `yaml:"cost"`
	Conditions map[string]any `yaml:"conditions"`
	Effects    map[string]any `yaml:"effects"`
}

// LoadCatalog reads a catalog document from path and builds a
// goap.ActionCatalog plus the declared key universe. strict controls
// whether effects are restricted to booleans. Effects and costs go
// through AddEffect/SetCost, so their failures surface as *goap.Error
// (a missing cost reads as 0 and is reported as InvalidCost); YAML
// values of unsupported types are reported as plain errors. The
// catalog's Validate is not called here.
func LoadCatalog(path string, strict bool) ([]string, *goap.ActionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("catalogio: read %s: %w", path, err)
	}

	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("catalogio: parse %s: %w", path, err)
	}

	catalog := goap.NewActionCatalog()
	catalog.Strict = strict

	names := make([]string, 0, len(doc.Actions))
	for name := range doc.Actions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action := doc.Actions[name]

		conditions, err := decodeMask(action.Conditions)
		if err != nil {
			return nil, nil, fmt.Errorf("catalogio: action %q: %w", name, err)
		}
		catalog.AddCondition(name, conditions)

		effects, err := decodeState(action.Effects)
		if err != nil {
			return nil, nil, fmt.Errorf("catalogio: action %q: %w", name, err)
		}
		if err := catalog.AddEffect(name, effects); err != nil {
			return nil, nil, err
		}
		if err := catalog.SetCost(name, action.Cost); err != nil {
			return nil, nil, err
		}
	}

	return doc.Keys, catalog, nil
}

// SaveCatalog writes catalog's accumulated tables back out as a
// CatalogDocument, for round-tripping a catalog built programmatically.
func SaveCatalog(path string, keys []string, catalog *goap.ActionCatalog) error {
	doc := CatalogDocument{Keys: keys, Actions: make(map[string]ActionDocument)}

	for _, name := range catalog.Names() {
		cost, _ := catalog.Cost(name)
		doc.Actions[name] = ActionDocument{
			Cost:       cost,
			Conditions: encodeMask(catalog.Conditions(name)),
			Effects:    encodeState(catalog.Effects(name)),
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalogio: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("catalogio: write %s: %w", path, err)
	}
	return nil
}

// LoadState reads a state document from path. The wildcard literal is
// rejected here since a concrete state can never contain Wildcard.
func LoadState(path string) (goap.State, error) {
	raw, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return decodeState(raw)
}

// LoadMask reads a state/goal document from path, accepting the
// wildcard literal "*" at any key to mean goap.Wildcard.
func LoadMask(path string) (goap.Mask, error) {
	raw, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return decodeMask(raw)
}

func loadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogio: read %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalogio: parse %s: %w", path, err)
	}
	return raw, nil
}

func decodeValue(v any) (goap.Value, error) {
	switch t := v.(type) {
	case bool:
		return goap.Bool(t), nil
	case int:
		return goap.Int(int64(t)), nil
	case int64:
		return goap.Int(t), nil
	case string:
		if t == wildcardLiteral {
			return goap.Wildcard, nil
		}
		return goap.Str(t), nil
	default:
		return goap.Value{}, fmt.Errorf("catalogio: unsupported YAML value type %T", v)
	}
}

func decodeState(raw map[string]any) (goap.State, error) {
	state := goap.NewState()
	for k, v := range raw {
		val, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		if val.IsWildcard() {
			return nil, fmt.Errorf("catalogio: key %q: wildcard is not valid in a concrete state document", k)
		}
		state.Set(k, val)
	}
	return state, nil
}

func decodeMask(raw map[string]any) (goap.Mask, error) {
	mask := goap.NewMask()
	for k, v := range raw {
		val, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		mask[k] = val
	}
	return mask, nil
}

func encodeValue(v goap.Value) any {
	switch v.Kind() {
	case goap.KindBool:
		return v.BoolValue()
	case goap.KindInt:
		return v.IntValue()
	case goap.KindWildcard:
		return wildcardLiteral
	default:
		return v.StrValue()
	}
}

func encodeState(s goap.State) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeMask(m goap.Mask) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = encodeValue(v)
	}
	return out
}
