package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt     ParamType = "int"
	ParamTypeFloat   ParamType = "float"
	ParamTypeString  ParamType = "string"
	ParamTypeEnum    ParamType = "enum"
	ParamTypePercent ParamType = "percent"
)

// ValidationRule is a machine-friendly representation of the constraints
// a prompt can check before a command runs.
type ValidationRule struct {
	Type        ParamType
	Required    bool
	Min         *float64
	Max         *float64
	EnumOptions []string
	Example     string
	Hint        string
}

func bound(v float64) *float64 { return &v }

// ranges holds numeric limits keyed by "command.param".
var ranges = map[string][2]float64{
	"feather.value":   {0, 1},
	"intensity.value": {-100, 100},
	"progress.value":  {0, 100},
	"drag.steps":      {1, 1000},
	"view.width":      {1, 8192},
	"view.height":     {1, 8192},
}

// enumOptions holds the accepted values of enum parameters keyed by
// "command.param".
var enumOptions = map[string][]string{
	"progress.target": {"feather", "intensity"},
	"rotate.op":       {"cw", "ccw", "180", "flip", "flop"},
	"preview.auto":    {"on", "off"},
	"update.apply":    {"yes", "no"},
}

// enumAliases maps alternative spellings onto canonical enum values.
var enumAliases = map[string]string{
	"90":    "cw",
	"-90":   "ccw",
	"270":   "ccw",
	"y":     "yes",
	"n":     "no",
	"true":  "on",
	"false": "off",
}

// parsePercentValue parses a percent string like "30%" or a bare number and returns numeric string.
func parsePercentValue(s string) (string, error) {
	s = strings.TrimSpace(s)
	raw := strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("invalid percent value: %q", s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// GenerateTooltip produces a tooltip string from a CommandSpec.
func GenerateTooltip(c CommandSpec) string {
	var sb strings.Builder
	sb.WriteString(c.Usage)
	sb.WriteString("\n  ")
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "\n  - %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
	}
	return sb.String()
}

// GenerateValidationRules creates ValidationRule entries from a CommandSpec.
func GenerateValidationRules(c CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "int":
			t = ParamTypeInt
		case "float":
			t = ParamTypeFloat
		case "percent":
			t = ParamTypePercent
		case "enum":
			t = ParamTypeEnum
		default:
			t = ParamTypeString
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		key := c.Name + "." + a.Name
		if lim, ok := ranges[key]; ok {
			r.Min, r.Max = bound(lim[0]), bound(lim[1])
		}
		r.EnumOptions = enumOptions[key]
		rules[a.Name] = r
	}
	return rules
}

// MetaStore indexes command metadata by name.
type MetaStore struct {
	Commands []CommandSpec
	byName   map[string]CommandSpec
}

// NewMetaStore creates a MetaStore from a command list.
func NewMetaStore(cmds []CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup resolves a command name, accepting a unique prefix.
func (m *MetaStore) Lookup(name string) (CommandSpec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := m.byName[name]; ok {
		return c, nil
	}
	var matches []CommandSpec
	for _, c := range m.Commands {
		if strings.HasPrefix(c.Name, name) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return CommandSpec{}, fmt.Errorf("unknown command: %s", name)
	}
	names := make([]string, len(matches))
	for i, c := range matches {
		names[i] = c.Name
	}
	return CommandSpec{}, fmt.Errorf("ambiguous command %q: %s", name, strings.Join(names, ", "))
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *MetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, err := m.Lookup(name)
	if err != nil {
		return "", nil, err
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

// NormalizeArgs validates args against the command's metadata and returns
// them in canonical form. Missing optional arguments become "".
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, err := store.Lookup(cmdName)
	if err != nil {
		return nil, err
	}
	if len(args) > len(c.Args) && !(len(c.Args) > 0 && c.Args[len(c.Args)-1].Type == "path") {
		return nil, fmt.Errorf("%s takes at most %d arguments, got %d", c.Name, len(c.Args), len(args))
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		// a trailing path swallows the rest of the line so names may contain spaces
		if a.Type == "path" && i == len(c.Args)-1 && len(args) > i {
			raw = strings.TrimSpace(strings.Join(args[i:], " "))
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, float64(v), vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypePercent:
			n, err := parsePercentValue(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			f, _ := strconv.ParseFloat(n, 64)
			if err := checkRange(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = n
		case ParamTypeEnum:
			v := strings.ToLower(raw)
			if alias, ok := enumAliases[v]; ok {
				v = alias
			}
			if !contains(vr.EnumOptions, v) {
				return nil, fmt.Errorf("parameter %s: %q is not one of %s", a.Name, raw, strings.Join(vr.EnumOptions, "|"))
			}
			out[i] = v
		default:
			out[i] = raw
		}
	}
	return out, nil
}

func checkRange(name string, v float64, vr ValidationRule) error {
	if vr.Min != nil && v < *vr.Min {
		return fmt.Errorf("parameter %s: %v < min %v", name, v, *vr.Min)
	}
	if vr.Max != nil && v > *vr.Max {
		return fmt.Errorf("parameter %s: %v > max %v", name, v, *vr.Max)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
