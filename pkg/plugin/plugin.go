// Package plugin bundles custom matcher types and predicates so
// they can be installed into an engine as a unit.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/matcher"
)

// Plugin defines the interface for extending an engine.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Install registers the plugin's matchers with the context.
	Install(ctx *Context) error
}

// Context provides access to the engine during installation.
type Context struct {
	Engine *assertion.DefaultEngine
	Config map[string]any
}

// RegisterMatcher adds a declarative matcher type to the engine.
func (c *Context) RegisterMatcher(
	matcherType string,
	builder assertion.Builder,
) error {
	return c.Engine.Register(matcherType, builder)
}

// Predicates returns the registry the engine resolves
// be_<name> types through.
func (c *Context) Predicates() *matcher.PredicateRegistry {
	return c.Engine.Predicates()
}

type funcPlugin struct {
	name    string
	version string
	install func(ctx *Context) error
}

func (p *funcPlugin) Name() string               { return p.name }
func (p *funcPlugin) Version() string            { return p.version }
func (p *funcPlugin) Install(ctx *Context) error { return p.install(ctx) }

// New creates a Plugin from an install function.
func New(name, version string, install func(ctx *Context) error) Plugin {
	return &funcPlugin{name: name, version: version, install: install}
}

// Registry manages plugin registration and installation.
type Registry struct {
	mu        sync.RWMutex
	plugins   map[string]Plugin
	installed map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins:   make(map[string]Plugin),
		installed: make(map[string]bool),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InstallAll installs, in name order, every registered plugin
// not installed yet.
func (r *Registry) InstallAll(ctx *Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.sortedNames() {
		if r.installed[name] {
			continue
		}
		if err := r.plugins[name].Install(ctx); err != nil {
			return fmt.Errorf("install plugin %q: %w", name, err)
		}
		r.installed[name] = true
	}
	return nil
}

// Install installs a specific plugin by name.
func (r *Registry) Install(name string, ctx *Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plugins[name]
	if !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	if r.installed[name] {
		return nil
	}
	if err := p.Install(ctx); err != nil {
		return fmt.Errorf("install plugin %q: %w", name, err)
	}
	r.installed[name] = true
	return nil
}

// Load registers and installs a set of plugins.
func (r *Registry) Load(ctx *Context, plugins ...Plugin) error {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
	}
	return r.InstallAll(ctx)
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// IsInstalled checks if a plugin has been installed.
func (r *Registry) IsInstalled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.installed[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkContext(ctx *Context) error {
	if ctx == nil || ctx.Engine == nil {
		return fmt.Errorf("plugin context has no engine")
	}
	return nil
}
