package config

import (
	"testing"
	"time"

	kit "tglang/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	core := New().Prefix("CORE_")
	if got := core.Key("API_PORT"); got != "CORE_API_PORT" {
		t.Fatalf("Key() = %q", got)
	}
	if got := core.Prefix("TGLANG_").Key("STRICT"); got != "CORE_TGLANG_STRICT" {
		t.Fatalf("nested Key() = %q", got)
	}
}

func TestMust(t *testing.T) {
	c := New().Prefix("T_")
	t.Setenv("T_NAME", "  tglang ")
	t.Setenv("T_WORKERS", " 8 ")
	t.Setenv("T_ON", "true")
	t.Setenv("T_TIMEOUT", "250ms")
	t.Setenv("T_BAD", "nope")

	if c.MustString("NAME") != "tglang" || c.MustInt("WORKERS") != 8 || !c.MustBool("ON") {
		t.Fatalf("Must* parsed wrong values")
	}
	if c.MustDuration("TIMEOUT") != 250*time.Millisecond {
		t.Fatalf("MustDuration wrong")
	}

	kit.MustPanic(t, func() { c.MustString("MISSING") })
	kit.MustPanic(t, func() { c.MustInt("BAD") })
	kit.MustPanic(t, func() { c.MustBool("BAD") })
	kit.MustPanic(t, func() { c.MustDuration("BAD") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_INT", "12")
	t.Setenv("M_BOOL", "false")
	t.Setenv("M_DUR", "2s")
	t.Setenv("M_BAD", "x")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string default", c.MayString("MISSING", "def"), "def"},
		{"int", c.MayInt("INT", 1), 12},
		{"int invalid", c.MayInt("BAD", 1), 1},
		{"bool", c.MayBool("BOOL", true), false},
		{"bool invalid", c.MayBool("BAD", true), true},
		{"duration", c.MayDuration("DUR", time.Second), 2 * time.Second},
		{"duration invalid", c.MayDuration("BAD", time.Second), time.Second},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMayBytes(t *testing.T) {
	c := New().Prefix("B_")
	cases := map[string]int{
		"4096":   4096,
		"64KiB":  64 << 10,
		"1 MiB":  1 << 20,
		"2MB":    2000000,
		"10B":    10,
		"-1":     7,
		"lots":   7,
		"1.5MiB": 7,
	}
	for in, want := range cases {
		t.Setenv("B_SIZE", in)
		if got := c.MayBytes("SIZE", 7); got != want {
			t.Fatalf("MayBytes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("C_")
	t.Setenv("C_ORIGINS", " http://a , ,http://b ")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("MayCSV = %v", got)
	}
	t.Setenv("C_EMPTY", " , ")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV blanks = %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("FORMAT", "table", "table", "tsv", "json"); got != "table" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("E_FORMAT", "TSV")
	if got := c.MayEnum("FORMAT", "table", "table", "tsv", "json"); got != "tsv" {
		t.Fatalf("canonical = %q", got)
	}
	t.Setenv("E_FORMAT", "xml")
	kit.MustPanic(t, func() { c.MayEnum("FORMAT", "table", "table", "tsv") })
}
