package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/isseis/go-qrfile/internal/safefileio"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Sources lists where Load looks for settings. Empty paths are skipped.
type Sources struct {
	ConfigFile string
	EnvFile    string
	// Environ is the process environment in os.Environ form; nil reads os.Environ
	Environ   []string
	Overrides Overrides
}

// Overrides carries values given on the command line. Nil fields were not set.
type Overrides struct {
	Profile     *string
	Compression *string
	Encoding    *string
	ModuleSize  *int
	Border      *int
	RenderLevel *string
	LogLevel    *string
	Verify      *bool
}

// Load resolves the configuration from src and validates it.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	if src.ConfigFile != "" {
		if err := loadTOML(src.ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	environment, err := buildEnvironment(src.EnvFile, src.Environ)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environment}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	src.Overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTOML decodes path over cfg so that keys absent from the file keep their defaults.
func loadTOML(path string, cfg *Config) error {
	content, err := safefileio.SafeReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigRead, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s: unknown keys:\n%s", ErrParsingConfig, path, strict.String())
		}
		return fmt.Errorf("%w: %s: %w", ErrParsingConfig, path, err)
	}
	return nil
}

// buildEnvironment layers the process environment over the .env file.
func buildEnvironment(envFile string, environ []string) (map[string]string, error) {
	environment := make(map[string]string)

	if envFile != "" {
		content, err := safefileio.SafeReadFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
		values, err := godotenv.UnmarshalBytes(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParsingConfig, envFile, err)
		}
		for k, v := range values {
			environment[k] = v
		}
	}

	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			environment[k] = v
		}
	}
	return environment, nil
}

func (o Overrides) apply(cfg *Config) {
	setString(&cfg.Profile, o.Profile)
	setString(&cfg.Compression, o.Compression)
	setString(&cfg.Encoding, o.Encoding)
	setString(&cfg.Render.Level, o.RenderLevel)
	setString(&cfg.Log.Level, o.LogLevel)
	if o.ModuleSize != nil {
		cfg.Render.ModuleSize = *o.ModuleSize
	}
	if o.Border != nil {
		cfg.Render.Border = *o.Border
	}
	if o.Verify != nil {
		cfg.Verify = *o.Verify
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
