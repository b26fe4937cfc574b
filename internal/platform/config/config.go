// Package config reads configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tglang/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("CORE_TGLANG_")
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified env var name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.Key(key))) }

// must parses a required value and panics through the logger when missing or invalid
func must[T any](c Conf, key, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid " + kind + " value")
	}
	return v
}

// may parses an optional value; invalid input is logged and def returned
func may[T any](c Conf, key, kind string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msg("invalid " + kind + "; using default")
		return def
	}
	return v
}

func str(s string) (string, error) { return s, nil }

// MustString panics if key is missing or empty
func (c Conf) MustString(key string) string { return must(c, key, "string", str) }

// MustInt panics if key is missing or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustBool panics if key is missing or not a bool
func (c Conf) MustBool(key string) bool { return must(c, key, "bool", strconv.ParseBool) }

// MustDuration panics if key is missing or not a duration like 250ms or 2s
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", time.ParseDuration)
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, str) }

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, strconv.Atoi) }

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, strconv.ParseBool) }

// MayDuration returns the value or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, time.ParseDuration)
}

// MayBytes reads a size such as 4096, 64KiB or 1MiB
func (c Conf) MayBytes(key string, def int) int { return may(c, key, "size", def, ParseBytes) }

// MayCSV splits a comma separated value, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case insensitive), def when empty,
// and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	if v == def {
		return v
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

var byteUnits = []struct {
	suffix string
	mult   int
}{
	{"KiB", 1 << 10},
	{"MiB", 1 << 20},
	{"KB", 1000},
	{"MB", 1000 * 1000},
	{"B", 1},
}

// ParseBytes parses a non negative byte size with an optional binary or decimal suffix
func ParseBytes(s string) (int, error) {
	s = strings.TrimSpace(s)
	mult := 1
	for _, u := range byteUnits {
		if strings.HasSuffix(s, u.suffix) {
			s, mult = strings.TrimSpace(strings.TrimSuffix(s, u.suffix)), u.mult
			break
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n * mult, nil
}
