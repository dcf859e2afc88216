package config

import (
	"flag"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/largeint/internal/errors"
)

// fileConfig mirrors the subset of AppConfig that may be set from a TOML
// file. Pointer fields distinguish "absent" from the zero value.
type fileConfig struct {
	Iterations *int      `toml:"iterations"`
	Workers    *int      `toml:"workers"`
	Seed       *int64    `toml:"seed"`
	MaxBits    *int      `toml:"max_bits"`
	Timeout    *duration `toml:"timeout"`
	Port       *string   `toml:"port"`
	CacheSize  *int      `toml:"cache_size"`
	MaxExprLen *int      `toml:"max_expr_len"`
	Decimal    *bool     `toml:"decimal"`
	NoColor    *bool     `toml:"no_color"`
	Session    *string   `toml:"session"`
	Reference  *string   `toml:"reference"`
}

// duration decodes TOML strings such as "30s" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// applyFileConfig loads path and copies every value it sets into config,
// skipping settings given explicitly on the command line.
func applyFileConfig(config *AppConfig, fs *flag.FlagSet, path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return apperrors.NewConfigError("config file %s: unknown key %q", path, undecoded[0].String())
	}

	setInt := func(name string, dst *int, v *int) {
		if v != nil && !isFlagSet(fs, name) {
			*dst = *v
		}
	}
	setInt("iterations", &config.Iterations, fc.Iterations)
	setInt("workers", &config.Workers, fc.Workers)
	setInt("max-bits", &config.MaxBits, fc.MaxBits)
	setInt("cache-size", &config.CacheSize, fc.CacheSize)
	setInt("max-expr-len", &config.MaxExprLen, fc.MaxExprLen)

	unset := func(name string) bool { return !isFlagSet(fs, name) }
	if fc.Seed != nil && unset("seed") {
		config.Seed = *fc.Seed
	}
	if fc.Timeout != nil && unset("timeout") {
		config.Timeout = fc.Timeout.Duration
	}
	if fc.Port != nil && unset("port") {
		config.Port = *fc.Port
	}
	if fc.Session != nil && unset("session") {
		config.Session = *fc.Session
	}
	if fc.Reference != nil && unset("reference") {
		config.Reference = *fc.Reference
	}
	if fc.Decimal != nil && unset("decimal") {
		config.Decimal = *fc.Decimal
	}
	if fc.NoColor != nil && unset("no-color") {
		config.NoColor = *fc.NoColor
	}
	return nil
}
