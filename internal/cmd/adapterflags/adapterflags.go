// Package adapterflags exposes registered adapters on a cobra command.
//
// Every descriptor becomes a boolean flag named after the adapter
// (--json-read) and every option a typed flag prefixed with the adapter
// name (--json-read-path). Option values resolve as flag, then the viper
// key adapters.<adapter>.<option>, then the descriptor default.
package adapterflags

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"
)

// Set is the adapter flags bound to one flag set.
type Set struct {
	flags       *pflag.FlagSet
	config      *viper.Viper
	descriptors []adapters.Descriptor
}

// Bind adds the flags of every descriptor to flags. Descriptors are bound
// in name order so help output is stable.
func Bind(flags *pflag.FlagSet, config *viper.Viper, descriptors []adapters.Descriptor) (*Set, error) {
	sorted := append([]adapters.Descriptor(nil), descriptors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, d := range sorted {
		flags.Bool(d.Name, false, fmt.Sprintf("[%s] %s", d.Type, d.Doc))
		for _, o := range d.Options {
			if err := addOption(flags, d, o); err != nil {
				return nil, err
			}
		}
	}
	return &Set{flags: flags, config: config, descriptors: sorted}, nil
}

// BindRegistry binds every descriptor of reg, optionally restricted to
// one adapter type.
func BindRegistry(flags *pflag.FlagSet, config *viper.Viper, reg *adapters.Registry, types ...adapters.Type) (*Set, error) {
	discovered, err := reg.Discover()
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = []adapters.Type{adapters.TypeReader, adapters.TypeWriter}
	}
	var descriptors []adapters.Descriptor
	for _, t := range types {
		descriptors = append(descriptors, discovered[t]...)
	}
	return Bind(flags, config, descriptors)
}

// FlagName returns the flag carrying option of adapter.
func FlagName(adapter, option string) string {
	return adapter + "-" + option
}

// ConfigKey returns the viper key carrying option of adapter.
func ConfigKey(adapter, option string) string {
	return "adapters." + adapter + "." + option
}

func addOption(flags *pflag.FlagSet, d adapters.Descriptor, o adapters.Option) error {
	name := FlagName(d.Name, o.Name)
	usage := fmt.Sprintf("[%s] %s", d.Name, o.Help)

	switch o.Type {
	case adapters.OptionString:
		def, _ := o.Default.(string)
		flags.String(name, def, usage)
	case adapters.OptionInt:
		def, _ := o.Default.(int)
		flags.Int(name, def, usage)
	case adapters.OptionFloat:
		def, _ := o.Default.(float64)
		flags.Float64(name, def, usage)
	case adapters.OptionBool:
		def, _ := o.Default.(bool)
		flags.Bool(name, def, usage)
	case adapters.OptionDuration:
		def, _ := o.Default.(time.Duration)
		flags.Duration(name, def, usage)
	default:
		return errors.NewAdapterParameterError(d.Name, o.Name, fmt.Sprintf("unsupported type %q", o.Type))
	}
	return nil
}

// Selection collects the enabled adapters and the option values given
// for them. Options left unset are omitted so the registry applies the
// descriptor defaults.
func (s *Set) Selection() (adapters.Selection, error) {
	sel := adapters.Selection{Options: make(map[string]adapters.Options)}
	for _, d := range s.descriptors {
		enabled, err := s.enabled(d.Name)
		if err != nil {
			return adapters.Selection{}, err
		}
		if !enabled {
			continue
		}
		sel.Names = append(sel.Names, d.Name)

		opts := make(adapters.Options)
		for _, o := range d.Options {
			v, ok, err := s.value(d.Name, o)
			if err != nil {
				return adapters.Selection{}, err
			}
			if ok {
				opts[o.Name] = v
			}
		}
		sel.Options[d.Name] = opts
	}
	return sel, nil
}

func (s *Set) enabled(adapter string) (bool, error) {
	if s.flags.Changed(adapter) {
		return s.flags.GetBool(adapter)
	}
	if s.config != nil {
		return s.config.GetBool(ConfigKey(adapter, "enabled")), nil
	}
	return false, nil
}

func (s *Set) value(adapter string, o adapters.Option) (any, bool, error) {
	name := FlagName(adapter, o.Name)
	if s.flags.Changed(name) {
		v, err := s.flagValue(name, o.Type)
		if err != nil {
			return nil, false, errors.NewAdapterParameterError(adapter, o.Name, err.Error())
		}
		return v, true, nil
	}

	key := ConfigKey(adapter, o.Name)
	if s.config == nil || !s.config.IsSet(key) {
		return nil, false, nil
	}
	switch o.Type {
	case adapters.OptionString:
		return s.config.GetString(key), true, nil
	case adapters.OptionInt:
		return s.config.GetInt(key), true, nil
	case adapters.OptionFloat:
		return s.config.GetFloat64(key), true, nil
	case adapters.OptionBool:
		return s.config.GetBool(key), true, nil
	case adapters.OptionDuration:
		return s.config.GetDuration(key), true, nil
	}
	return nil, false, errors.NewAdapterParameterError(adapter, o.Name, fmt.Sprintf("unsupported type %q", o.Type))
}

func (s *Set) flagValue(name string, t adapters.OptionType) (any, error) {
	switch t {
	case adapters.OptionString:
		return s.flags.GetString(name)
	case adapters.OptionInt:
		return s.flags.GetInt(name)
	case adapters.OptionFloat:
		return s.flags.GetFloat64(name)
	case adapters.OptionBool:
		return s.flags.GetBool(name)
	case adapters.OptionDuration:
		return s.flags.GetDuration(name)
	}
	return nil, fmt.Errorf("unsupported type %q", t)
}
