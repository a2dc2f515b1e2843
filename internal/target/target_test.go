package target

import "testing"

func TestResolveUID(t *testing.T) {
	reg := Registry{
		"proj.tool":       "bin/tool",
		"proj.sub.helper": "bin/helper",
		"other.util":      "bin/util",
	}

	testCases := []struct {
		name     string
		target   string
		prefix   string
		reg      Registry
		expected string
	}{
		{"empty name", "", "proj", reg, ""},
		{"rooted name unchanged", ".proj.tool", "other", reg, ".proj.tool"},
		{"rooted unknown unchanged", ".no.such", "proj", reg, ".no.such"},
		{"no prefix", "tool", "", reg, "tool"},
		{"nil registry", "tool", "proj", nil, "tool"},
		{"empty registry", "tool", "proj", Registry{}, "tool"},
		{"direct prefix match", "tool", "proj", reg, "proj.tool"},
		{"nested prefix match", "helper", "proj.sub", reg, "proj.sub.helper"},
		{"shortened prefix match", "tool", "proj.sub", reg, "proj.tool"},
		{"no match returns name", "missing", "proj", reg, "missing"},
		{"foreign prefix no match", "tool", "other", reg, "tool"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveUID(tc.target, tc.prefix, tc.reg)
			if got != tc.expected {
				t.Errorf("ResolveUID(%q, %q) = %q, want %q",
					tc.target, tc.prefix, got, tc.expected)
			}
		})
	}
}

// The prefix shortens by keeping only the portion before the first
// separator: a.b.c tries "a.b.c.name" then "a.name", never "a.b.name".
func TestResolveUID_MultiSegmentPrefix(t *testing.T) {
	reg := Registry{
		"a.name":   "bin/a",
		"a.b.name": "bin/ab",
	}

	got := ResolveUID("name", "a.b.c", reg)
	if got != "a.name" {
		t.Errorf("ResolveUID(name, a.b.c) = %q, want %q (intermediate a.b must be skipped)", got, "a.name")
	}
}

func TestIsTarget(t *testing.T) {
	reg := Registry{"proj.tool": "bin/tool"}

	testCases := []struct {
		name     string
		target   string
		prefix   string
		reg      Registry
		expected bool
	}{
		{"known via prefix", "tool", "proj", reg, true},
		{"known fully qualified", "proj.tool", "", reg, true},
		{"rooted matches unrooted key", ".proj.tool", "", reg, true},
		{"unknown", "other", "proj", reg, false},
		{"empty name", "", "proj", reg, false},
		{"nil registry", "tool", "proj", nil, false},
		{"empty registry", "tool", "proj", Registry{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsTarget(tc.target, tc.prefix, tc.reg)
			if got != tc.expected {
				t.Errorf("IsTarget(%q, %q) = %v, want %v",
					tc.target, tc.prefix, got, tc.expected)
			}
		})
	}
}

func TestParseUID(t *testing.T) {
	testCases := []struct {
		input  string
		rooted bool
		key    string
	}{
		{"proj.tool", false, "proj.tool"},
		{".proj.tool", true, "proj.tool"},
		{"", false, ""},
		{".", true, ""},
	}

	for _, tc := range testCases {
		uid := ParseUID(tc.input)
		if uid.Rooted != tc.rooted || uid.Key != tc.key {
			t.Errorf("ParseUID(%q) = %+v, want rooted=%v key=%q",
				tc.input, uid, tc.rooted, tc.key)
		}
		if uid.String() != tc.input {
			t.Errorf("ParseUID(%q).String() = %q, want round trip", tc.input, uid.String())
		}
	}
}
