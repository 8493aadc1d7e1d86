package config

// Config is the full devbench configuration document. Every field has a
// working default so the file itself is optional: a bare `devbench provision`
// provisions the standard imaging workstation.
type Config struct {
	Version     string         `yaml:"version" validate:"required,semver"`
	Name        string         `yaml:"name" validate:"required,min=1,max=100"`
	Description string         `yaml:"description,omitempty"`
	Settings    Settings       `yaml:"settings,omitempty"`
	Runtime     RuntimeConfig  `yaml:"runtime,omitempty"`
	Identity    IdentityConfig `yaml:"identity,omitempty"`
	SDK         SDKConfig      `yaml:"sdk,omitempty"`
	ModuleRoot  string         `yaml:"module_root,omitempty" validate:"required"`
	Modules     []ModuleConfig `yaml:"modules,omitempty" validate:"omitempty,dive"`
}

// Settings holds global execution parameters.
type Settings struct {
	Verbose        bool   `yaml:"verbose,omitempty"`
	DryRun         bool   `yaml:"dry_run,omitempty"`
	NonInteractive bool   `yaml:"non_interactive,omitempty"`
	PackageManager string `yaml:"package_manager,omitempty" validate:"omitempty,oneof=winget brew apt-get"`
}

// RuntimeConfig gates the scripting runtime capability on a minimum version.
type RuntimeConfig struct {
	MinimumVersion string `yaml:"minimum_version,omitempty" validate:"required,semver"`
}

// IdentityConfig controls the identity preflight domain. EmailPlaceholder is
// the sentinel a freshly templated machine carries; a detected value equal to
// it counts as unconfigured.
type IdentityConfig struct {
	EmailPlaceholder string `yaml:"email_placeholder,omitempty" validate:"required,email"`
}

// SDKConfig locates the deployment SDK and its bootstrap installer.
type SDKConfig struct {
	// Path is the well-known install directory whose existence marks the SDK
	// as present.
	Path string `yaml:"path,omitempty" validate:"required"`
	// Bootstrap is the vendor tool invoked to install the SDK.
	Bootstrap string `yaml:"bootstrap,omitempty" validate:"required"`
	// BootstrapArgs is the fixed argument set passed to the bootstrap tool.
	BootstrapArgs []string `yaml:"bootstrap_args,omitempty"`
}

// ModuleConfig names one toolchain module fetched from a package repository
// into the module root.
type ModuleConfig struct {
	Name   string `yaml:"name" validate:"required,module_name"`
	Source string `yaml:"source" validate:"required,repo_url"`
	Ref    string `yaml:"ref,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{
		Version: "1.0.0",
		Name:    "imaging-workstation",
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Name == "" {
		cfg.Name = "imaging-workstation"
	}
	if cfg.Runtime.MinimumVersion == "" {
		cfg.Runtime.MinimumVersion = "7.0.0"
	}
	if cfg.Identity.EmailPlaceholder == "" {
		cfg.Identity.EmailPlaceholder = "you@example.com"
	}
	if cfg.SDK.Path == "" {
		cfg.SDK.Path = "~/devbench/sdk"
	}
	if cfg.SDK.Bootstrap == "" {
		cfg.SDK.Bootstrap = "deploykit-setup"
	}
	if len(cfg.SDK.BootstrapArgs) == 0 {
		cfg.SDK.BootstrapArgs = []string{"--accept-license", "--quiet"}
	}
	if cfg.ModuleRoot == "" {
		cfg.ModuleRoot = "~/devbench/modules"
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = []ModuleConfig{
			{Name: "osd", Source: "https://github.com/OSDeploy/OSD.git"},
		}
	}
}
