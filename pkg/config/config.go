// Package config layers ctxgen settings from defaults, an optional YAML
// config file, CTXGEN_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ctxgen/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by ctxgen.
const EnvPrefix = "CTXGEN"

// Keys shared by flags, config files and environment variables.
const (
	KeyExclude         = "exclude"
	KeyExcludeFrom     = "exclude-from"
	KeyDisableCategory = "disable-category"
	KeyNoDefaults      = "no-defaults"
	KeyDryRun          = "dry-run"
	KeyGitignore       = "gitignore"
	KeyCopy            = "copy"
	KeyDebug           = "debug"
)

var sliceKeys = []string{KeyExclude, KeyExcludeFrom, KeyDisableCategory}

var boolKeys = []string{KeyNoDefaults, KeyDryRun, KeyGitignore, KeyCopy, KeyDebug}

// Config holds the resolved settings for one run.
type Config struct {
	Exclude         []string
	ExcludeFrom     []string
	DisableCategory []string
	NoDefaults      bool
	DryRun          bool
	Gitignore       bool
	Copy            bool
	Debug           bool

	// File is the config file that was read, if any.
	File string
}

// New returns a viper instance with ctxgen defaults and environment lookup.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, k := range sliceKeys {
		v.SetDefault(k, []string{})
	}
	for _, k := range boolKeys {
		v.SetDefault(k, false)
	}
	return v
}

// Bind makes explicitly set flags override every other source. Flags that
// do not exist in fs are ignored.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, k := range append(append([]string{}, sliceKeys...), boolKeys...) {
		f := fs.Lookup(k)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(k, f); err != nil {
			return errors.NewError(errors.InvalidConfig, "failed to bind flag", k, err)
		}
	}
	return nil
}

// Locate returns the config file to read: explicit when set, otherwise the
// first of ./.ctxgen.yaml and $HOME/.config/ctxgen/config.yaml that exists.
// It returns "" when there is none.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{".ctxgen.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "ctxgen", "config.yaml"))
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.Mode().IsRegular() {
			return c
		}
	}
	return ""
}

// Load reads the config file chosen by Locate into v and returns the merged
// settings. A missing default file is not an error; a missing explicit file
// or one that fails to parse is.
func Load(v *viper.Viper, explicit string) (*Config, error) {
	file := Locate(explicit)
	if file != "" {
		v.SetConfigFile(file)
		if filepath.Ext(file) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewError(errors.InvalidConfig, "error reading config file", file, err)
		}
	}

	cfg := &Config{
		Exclude:         trim(v.GetStringSlice(KeyExclude)),
		ExcludeFrom:     Split(v.GetStringSlice(KeyExcludeFrom)),
		DisableCategory: Split(v.GetStringSlice(KeyDisableCategory)),
		NoDefaults:      v.GetBool(KeyNoDefaults),
		DryRun:          v.GetBool(KeyDryRun),
		Gitignore:       v.GetBool(KeyGitignore),
		Copy:            v.GetBool(KeyCopy),
		Debug:           v.GetBool(KeyDebug),
		File:            v.ConfigFileUsed(),
	}
	return cfg, nil
}

// trim drops blank entries. Patterns may contain commas ("*.{log,tmp}"), so
// they are not split.
func trim(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Split breaks comma separated values apart, trims them and drops empty
// entries, so "go, vcs" and ["go", "vcs"] mean the same thing.
func Split(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
