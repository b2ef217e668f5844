package adapters

import (
	"fmt"
	"time"

	"github.com/agentstation/songmap/pkg/errors"
)

// OptionType is the declared type of an adapter option.
type OptionType string

// Option types understood by the configuration surface.
const (
	OptionString   OptionType = "string"
	OptionInt      OptionType = "int"
	OptionFloat    OptionType = "float"
	OptionBool     OptionType = "bool"
	OptionDuration OptionType = "duration"
)

// Option describes one constructor parameter of an adapter.
type Option struct {
	Name    string     `json:"name" yaml:"name"`
	Type    OptionType `json:"type" yaml:"type"`
	Help    string     `json:"help,omitempty" yaml:"help,omitempty"`
	Default any        `json:"default,omitempty" yaml:"default,omitempty"`
}

// Accepts reports whether v has the Go type declared by o.
func (o Option) Accepts(v any) bool {
	switch o.Type {
	case OptionString:
		_, ok := v.(string)
		return ok
	case OptionInt:
		_, ok := v.(int)
		return ok
	case OptionFloat:
		_, ok := v.(float64)
		return ok
	case OptionBool:
		_, ok := v.(bool)
		return ok
	case OptionDuration:
		_, ok := v.(time.Duration)
		return ok
	}
	return false
}

// validate checks the option declaration itself.
func (o Option) validate(adapter string) error {
	switch o.Type {
	case OptionString, OptionInt, OptionFloat, OptionBool, OptionDuration:
	case "":
		return errors.NewAdapterParameterError(adapter, o.Name, "missing type")
	default:
		return errors.NewAdapterParameterError(adapter, o.Name, fmt.Sprintf("unsupported type %q", o.Type))
	}
	if o.Default != nil && !o.Accepts(o.Default) {
		return errors.NewAdapterParameterError(adapter, o.Name,
			fmt.Sprintf("default %v (%T) is not a %s", o.Default, o.Default, o.Type))
	}
	return nil
}

// Options holds resolved option values keyed by option name.
type Options map[string]any

// String returns a string option or "".
func (o Options) String(name string) string {
	v, _ := o[name].(string)
	return v
}

// Int returns an int option or 0.
func (o Options) Int(name string) int {
	v, _ := o[name].(int)
	return v
}

// Float returns a float option or 0.
func (o Options) Float(name string) float64 {
	v, _ := o[name].(float64)
	return v
}

// Bool returns a bool option or false.
func (o Options) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

// Duration returns a duration option or 0.
func (o Options) Duration(name string) time.Duration {
	v, _ := o[name].(time.Duration)
	return v
}
