package depgraph

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options is the per-invocation resolution configuration. The zero value of
// every field except ServicePath is a usable default.
type Options struct {
	// ServicePath is the service root: its node_modules is the hoisted
	// install location and its package.json the service manifest.
	ServicePath string

	// UseLocalNodeModules reads every package from
	// <ServicePath>/node_modules/<name>/package.json instead of searching
	// upward from the requester.
	UseLocalNodeModules bool

	// IgnorePackageJSONDependencies trusts the service manifest: packages it
	// declares are left to the packaging layer. A package it does not
	// declare is a fatal error.
	IgnorePackageJSONDependencies bool

	// IgnoredPackages are never resolved nor included.
	IgnoredPackages []string

	// ModulePaths are extra directories searched for bare specifiers when a
	// package misses and the specifier is retried as a plain module.
	ModulePaths []string

	// Logger receives warnings and progress. Nil discards.
	Logger *log.Logger
}

// Validate checks the options and returns a copy with ServicePath made
// absolute and defaults filled in.
func (o Options) Validate() (Options, error) {
	if o.ServicePath == "" {
		return o, &ResolveError{Kind: KindHostMisconfiguration, Name: "service path is required"}
	}

	abs, err := filepath.Abs(o.ServicePath)
	if err != nil {
		return o, &ResolveError{
			Kind: KindHostMisconfiguration,
			Name: fmt.Sprintf("service path %s", o.ServicePath),
			Err:  err,
		}
	}
	o.ServicePath = abs

	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o, nil
}

func (o Options) isIgnored(name string) bool {
	for _, ignored := range o.IgnoredPackages {
		if ignored == name {
			return true
		}
	}
	return false
}
