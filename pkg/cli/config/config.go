package config

import (
	"errors"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional TOML application configuration
type AppConfig struct {
	Pagination Pagination `toml:"pagination"`
}

// Pagination configures how message listings are bounded. Zero values
// fall back to the built-in defaults.
type Pagination struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// PagePolicy converts the section into a validated domain policy
func (p Pagination) PagePolicy() (model.PagePolicy, error) {
	policy := model.DefaultPagePolicy()
	if p.MaxLimit != 0 {
		policy.MaxLimit = p.MaxLimit
	}
	if p.DefaultLimit != 0 {
		policy.DefaultLimit = p.DefaultLimit
	}
	if p.DefaultLimit == 0 && policy.DefaultLimit > policy.MaxLimit {
		policy.DefaultLimit = policy.MaxLimit
	}

	if err := policy.Validate(); err != nil {
		return model.PagePolicy{}, goerr.Wrap(err, "invalid pagination section")
	}
	return policy, nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if _, err := a.Pagination.PagePolicy(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrInvalidConfig, "config file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// App holds the CLI flag pointing at the TOML configuration
type App struct {
	path string
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("SUPPORTCASE_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the file if one was given; otherwise the defaults apply.
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(a.path)
}
