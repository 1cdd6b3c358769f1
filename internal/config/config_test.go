package config

import (
	"flag"
	"testing"
)

func TestFlagsRegistered(t *testing.T) {
	cases := []struct {
		name     string
		defValue string
	}{
		{"a", "localhost:4000"},
		{"d", ""},
		{"s", ""},
		{"f", "http://localhost:5173"},
		{"m", ""},
		{"t", ""},
		{"c", "config.json"},
		{"config", "config.json"},
	}

	for _, tc := range cases {
		f := flag.Lookup(tc.name)
		if f == nil {
			t.Errorf("flag -%s is not registered", tc.name)
			continue
		}
		if f.DefValue != tc.defValue {
			t.Errorf("flag -%s default = %q; want %q", tc.name, f.DefValue, tc.defValue)
		}
	}
}
