// Package serverless reads the parts of a Serverless Framework service
// definition that decide which files ship with each function, and writes
// the resolved dependency files back into its package patterns.
package serverless

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// ConfigFileNames are tried in order when loading a service.
var ConfigFileNames = []string{"serverless.yml", "serverless.yaml"}

// Config is the subset of serverless.yml the packager reads and updates.
type Config struct {
	Service          string               `yaml:"service"`
	FrameworkVersion string               `yaml:"frameworkVersion,omitempty"`
	Provider         Provider             `yaml:"provider"`
	Package          *PackageConfig       `yaml:"package,omitempty"`
	Functions        map[string]*Function `yaml:"functions"`
	Custom           Custom               `yaml:"custom,omitempty"`
}

type Provider struct {
	Name    string `yaml:"name,omitempty"`
	Runtime string `yaml:"runtime,omitempty"`
}

// PackageConfig holds the packaging patterns of a service or function.
type PackageConfig struct {
	Individually bool     `yaml:"individually,omitempty"`
	Patterns     []string `yaml:"patterns,omitempty"`
}

type Function struct {
	Handler string         `yaml:"handler"`
	Runtime string         `yaml:"runtime,omitempty"`
	Package *PackageConfig `yaml:"package,omitempty"`
}

type Custom struct {
	IncludeDependencies *PluginConfig  `yaml:"serverless-plugin-include-dependencies,omitempty"`
	Caching             *CachingConfig `yaml:"includeDependencies,omitempty"`
}

// PluginConfig mirrors custom.serverless-plugin-include-dependencies.
type PluginConfig struct {
	ShouldUseLocalNodeModules           bool     `yaml:"shouldUseLocalNodeModules"`
	ShouldIgnorePackageJSONDependencies bool     `yaml:"shouldIgnorePackageJsonDependencies"`
	PackagesToBeIgnored                 []string `yaml:"packagesToBeIgnored"`
}

// CachingConfig mirrors custom.includeDependencies.
type CachingConfig struct {
	EnableCaching bool `yaml:"enableCaching"`
}

// Service is a parsed service definition rooted at Path.
type Service struct {
	Path   string
	Config *Config
}

// ParseConfig decodes serverless.yml content.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse service config: %w", err)
	}
	return &cfg, nil
}

// LoadService reads the service definition found in servicePath.
func LoadService(servicePath string) (*Service, error) {
	if servicePath == "" {
		return nil, &depgraph.ResolveError{Kind: depgraph.KindHostMisconfiguration, Name: "service path is required"}
	}

	absPath, err := filepath.Abs(servicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", servicePath, err)
	}

	for _, name := range ConfigFileNames {
		configPath := filepath.Join(absPath, name)
		data, err := os.ReadFile(configPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}

		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		return &Service{Path: absPath, Config: cfg}, nil
	}

	return nil, fmt.Errorf("no %s found in %s", ConfigFileNames[0], absPath)
}

// FunctionNames returns the declared functions in sorted order.
func (s *Service) FunctionNames() []string {
	names := make([]string, 0, len(s.Config.Functions))
	for name := range s.Config.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runtime returns the function runtime, falling back to the provider's.
func (s *Service) Runtime(fn *Function) string {
	if fn.Runtime != "" {
		return fn.Runtime
	}
	return s.Config.Provider.Runtime
}

// Individually reports whether each function is packaged on its own.
func (s *Service) Individually() bool {
	return s.Config.Package != nil && s.Config.Package.Individually
}

// PackageSummary is the packaging section of a service after processing.
type PackageSummary struct {
	Package   *PackageConfig            `yaml:"package,omitempty"`
	Functions map[string]*PackageConfig `yaml:"functions,omitempty"`
}

// Summary collects the service and function package sections.
func (s *Service) Summary() PackageSummary {
	summary := PackageSummary{Package: s.Config.Package}
	for name, fn := range s.Config.Functions {
		if fn == nil || fn.Package == nil || len(fn.Package.Patterns) == 0 {
			continue
		}
		if summary.Functions == nil {
			summary.Functions = make(map[string]*PackageConfig)
		}
		summary.Functions[name] = fn.Package
	}
	return summary
}

// MarshalSummary renders the summary as YAML.
func (s *Service) MarshalSummary() ([]byte, error) {
	return yaml.Marshal(s.Summary())
}
