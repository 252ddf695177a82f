package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LookupFunc reads a single environment variable.
type LookupFunc func(key string) (string, bool)

// Resolver applies env > CLI > default precedence to settings.
type Resolver struct {
	logger *zap.Logger
	lookup LookupFunc
}

// NewResolver creates a Resolver that reads the process environment.
func NewResolver(logger *zap.Logger) Resolver {
	return NewResolverWithLookup(logger, os.LookupEnv)
}

// NewResolverWithLookup creates a Resolver backed by lookup.
func NewResolverWithLookup(logger *zap.Logger, lookup LookupFunc) Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return Resolver{logger: logger, lookup: lookup}
}

// Lookup exposes the resolver's environment source.
func (r Resolver) Lookup(key string) (string, bool) {
	if r.lookup == nil {
		return os.LookupEnv(key)
	}
	return r.lookup(key)
}

func (r Resolver) logConflict(setting, envVal, cliVal string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(
		"config: conflict for "+setting,
		zap.String("env", envVal),
		zap.String("cli", cliVal),
		zap.String("decision", "using env value"),
	)
}

func (r Resolver) env(envKey string) (string, bool) {
	if envKey == "" {
		return "", false
	}
	val, ok := r.Lookup(envKey)
	return strings.TrimSpace(val), ok
}

// String resolves a string setting using the precedence rules.
func (r Resolver) String(setting, envKey, cliVal string, cliSet bool, defaultVal string) string {
	envVal, envSet := r.env(envKey)
	if envSet && cliSet && envVal != cliVal {
		r.logConflict(setting, envVal, cliVal)
	}
	if envSet {
		return envVal
	}
	if cliSet {
		return cliVal
	}
	return defaultVal
}

// Optional resolves a setting that has no default and whose presence matters.
// The second result reports whether either source supplied a value.
func (r Resolver) Optional(setting, envKey, cliVal string, cliSet bool) (string, bool) {
	envVal, envSet := r.env(envKey)
	if envSet && cliSet && envVal != cliVal {
		r.logConflict(setting, envVal, cliVal)
	}
	switch {
	case envSet:
		return envVal, true
	case cliSet:
		return cliVal, true
	default:
		return "", false
	}
}

// Choice resolves a string setting and checks it against allowed values.
func (r Resolver) Choice(setting, envKey, cliVal string, cliSet bool, defaultVal string, allowed ...string) (string, error) {
	value := strings.ToLower(r.String(setting, envKey, cliVal, cliSet, defaultVal))
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", fmt.Errorf("config %s: invalid value %q (allowed: %s)", setting, value, strings.Join(allowed, ", "))
}
