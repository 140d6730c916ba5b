// Package config loads mason settings from embedded defaults, an
// optional mason.toml in the build tree, and MASON_* environment
// variables, in that precedence order.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/masonbuild/mason/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment overrides. Nesting uses a
// double underscore so single underscores survive in key names:
// MASON_BUILD__EXEC_ROOT maps to build.exec_root.
const EnvPrefix = "MASON_"

// Settings is the resolved configuration.
type Settings struct {
	Build   BuildSettings   `koanf:"build"`
	Cache   CacheSettings   `koanf:"cache"`
	Logging LoggingSettings `koanf:"logging"`
}

// BuildSettings configures path resolution and execution behavior.
type BuildSettings struct {
	ExecRoot  string `koanf:"exec_root"`
	OutputDir string `koanf:"output_dir"`
	DryRun    bool   `koanf:"dry_run"`
}

// CacheSettings bounds the per-build file cache.
type CacheSettings struct {
	Capacity int `koanf:"capacity"`
}

// LoggingSettings controls log verbosity.
type LoggingSettings struct {
	Verbosity int `koanf:"verbosity"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load resolves settings for a build tree rooted at dir. A missing
// mason.toml is not an error; a malformed one is.
func Load(dir string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, filename := range []string{".mason.toml", "mason.toml"} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}
	if s.Build.ExecRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve working directory")
		}
		s.Build.ExecRoot = cwd
	}
	return &s, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
