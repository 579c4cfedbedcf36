// Configuration resolution with precedence handling.
package config

// Resolver handles configuration precedence: CLI flags > plugforge.yaml > built-in defaults.
type Resolver struct {
	config *Config
}

// NewResolver creates a resolver over a loaded config. A nil config
// resolves against the defaults only.
func NewResolver(config *Config) *Resolver {
	if config == nil {
		config = Default()
	}
	return &Resolver{config: config}
}

// ResolveProfile resolves the build profile.
func (r *Resolver) ResolveProfile(cliProfile string) string {
	if cliProfile != "" {
		return cliProfile
	}
	if r.config.Build.Profile != "" {
		return r.config.Build.Profile
	}
	return "release"
}

// ResolveTarget resolves the target package. Empty means the user must
// pass --target.
func (r *Resolver) ResolveTarget(cliTarget string) string {
	if cliTarget != "" {
		return cliTarget
	}
	return r.config.Build.Target
}

// ResolveProductName resolves the bundle product name, falling back to
// the project name.
func (r *Resolver) ResolveProductName(cliProduct string) string {
	if cliProduct != "" {
		return cliProduct
	}
	if r.config.Bundle.ProductName != "" {
		return r.config.Bundle.ProductName
	}
	return r.config.Project.Name
}

// ResolveInstallRoot resolves the install destination. Empty means the
// platform default applies.
func (r *Resolver) ResolveInstallRoot(cliRoot string) string {
	if cliRoot != "" {
		return cliRoot
	}
	return r.config.Install.Root
}

// ResolveOutputDir resolves the bundle output directory.
func (r *Resolver) ResolveOutputDir(cliOutputDir string) string {
	if cliOutputDir != "" {
		return cliOutputDir
	}
	if r.config.Bundle.OutputDir != "" {
		return r.config.Bundle.OutputDir
	}
	return "target/bundle"
}

// Config returns the underlying configuration.
func (r *Resolver) Config() *Config {
	return r.config
}
