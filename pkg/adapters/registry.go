package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agentstation/songmap/pkg/errors"
)

// ReaderFactory opens a reader with resolved options.
type ReaderFactory func(ctx context.Context, opts Options) (Reader, error)

// WriterFactory opens a writer with resolved options.
type WriterFactory func(ctx context.Context, opts Options) (Writer, error)

// Descriptor is everything the configuration surface needs to know about
// one adapter.
type Descriptor struct {
	Name    string   `json:"name" yaml:"name"`
	Type    Type     `json:"type" yaml:"type"`
	Doc     string   `json:"doc" yaml:"doc"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	NewReader ReaderFactory `json:"-" yaml:"-"`
	NewWriter WriterFactory `json:"-" yaml:"-"`
}

// Option returns the named option declaration.
func (d Descriptor) Option(name string) (Option, bool) {
	for _, o := range d.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Registry holds adapter descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor. Registering the same name twice, or a
// descriptor without the factory for its type, panics: both are
// programming errors caught at start-up.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.Name]; exists {
		panic(fmt.Sprintf("adapters: %s registered twice", d.Name))
	}
	switch d.Type {
	case TypeReader:
		if d.NewReader == nil {
			panic(fmt.Sprintf("adapters: reader %s has no factory", d.Name))
		}
	case TypeWriter:
		if d.NewWriter == nil {
			panic(fmt.Sprintf("adapters: writer %s has no factory", d.Name))
		}
	default:
		panic(fmt.Sprintf("adapters: %s has unknown type %q", d.Name, d.Type))
	}
	r.descriptors[d.Name] = d
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// Discover groups descriptors by type, sorted by name. Any option without
// a usable type fails discovery with *errors.AdapterParameterError.
func (r *Registry) Discover() (map[Type][]Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := map[Type][]Descriptor{
		TypeReader: {},
		TypeWriter: {},
	}
	for _, d := range r.descriptors {
		for _, o := range d.Options {
			if err := o.validate(d.Name); err != nil {
				return nil, err
			}
		}
		out[d.Type] = append(out[d.Type], d)
	}
	for t := range out {
		sort.Slice(out[t], func(i, j int) bool { return out[t][i].Name < out[t][j].Name })
	}
	return out, nil
}

// Selection is the adapters chosen on the configuration surface with
// their option values, keyed by adapter name.
type Selection struct {
	Names   []string
	Options map[string]Options
}

// Resolved is the reader and writer picked from a Selection.
type Resolved struct {
	Reader        Descriptor
	Writer        Descriptor
	ReaderOptions Options
	WriterOptions Options
}

// OpenReader opens the selected reader.
func (r *Resolved) OpenReader(ctx context.Context) (Reader, error) {
	return r.Reader.NewReader(ctx, r.ReaderOptions)
}

// OpenWriter opens the selected writer.
func (r *Resolved) OpenWriter(ctx context.Context) (Writer, error) {
	return r.Writer.NewWriter(ctx, r.WriterOptions)
}

// Resolve picks exactly one reader and one writer from sel. Anything else
// is a *errors.ConfigError; nothing is opened.
func (r *Registry) Resolve(sel Selection) (*Resolved, error) {
	reader, readerOpts, err := r.resolveOne(sel, TypeReader)
	if err != nil {
		return nil, err
	}
	writer, writerOpts, err := r.resolveOne(sel, TypeWriter)
	if err != nil {
		return nil, err
	}
	return &Resolved{
		Reader:        reader,
		Writer:        writer,
		ReaderOptions: readerOpts,
		WriterOptions: writerOpts,
	}, nil
}

// ResolveReader picks exactly one reader from sel and ignores writers.
func (r *Registry) ResolveReader(sel Selection) (Descriptor, Options, error) {
	return r.resolveOne(sel, TypeReader)
}

func (r *Registry) resolveOne(sel Selection, t Type) (Descriptor, Options, error) {
	var picked []Descriptor
	for _, name := range sel.Names {
		d, ok := r.Lookup(name)
		if !ok {
			return Descriptor{}, nil, errors.NewConfigError("adapters", fmt.Sprintf("unknown adapter %q", name), errors.ErrNotFound)
		}
		if d.Type == t {
			picked = append(picked, d)
		}
	}

	switch len(picked) {
	case 1:
	case 0:
		return Descriptor{}, nil, errors.NewConfigError("adapters", fmt.Sprintf("you need to specify one %s", t), nil)
	default:
		names := make([]string, len(picked))
		for i, d := range picked {
			names[i] = d.Name
		}
		return Descriptor{}, nil, errors.NewConfigError("adapters",
			fmt.Sprintf("you need to specify only one %s, got %s", t, strings.Join(names, ", ")), nil)
	}

	d := picked[0]
	opts, err := resolveOptions(d, sel.Options[d.Name])
	if err != nil {
		return Descriptor{}, nil, err
	}
	return d, opts, nil
}

// resolveOptions applies defaults and checks supplied values.
func resolveOptions(d Descriptor, supplied Options) (Options, error) {
	opts := make(Options, len(d.Options))
	for _, o := range d.Options {
		if err := o.validate(d.Name); err != nil {
			return nil, err
		}
		if o.Default != nil {
			opts[o.Name] = o.Default
		}
	}
	for name, v := range supplied {
		o, ok := d.Option(name)
		if !ok {
			return nil, errors.NewAdapterParameterError(d.Name, name, "unknown option")
		}
		if !o.Accepts(v) {
			return nil, errors.NewAdapterParameterError(d.Name, name, fmt.Sprintf("value %v (%T) is not a %s", v, v, o.Type))
		}
		opts[name] = v
	}
	return opts, nil
}

var defaultRegistry = NewRegistry()

// Default returns the process wide registry adapters register into.
func Default() *Registry {
	return defaultRegistry
}

// Register adds d to the default registry.
func Register(d Descriptor) {
	defaultRegistry.Register(d)
}

// Lookup finds a descriptor in the default registry.
func Lookup(name string) (Descriptor, bool) {
	return defaultRegistry.Lookup(name)
}

// Discover lists the default registry.
func Discover() (map[Type][]Descriptor, error) {
	return defaultRegistry.Discover()
}

// Resolve resolves sel against the default registry.
func Resolve(sel Selection) (*Resolved, error) {
	return defaultRegistry.Resolve(sel)
}
