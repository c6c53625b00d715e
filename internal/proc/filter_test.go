package proc

import (
	"reflect"
	"testing"
)

func TestFilter_IsExcluded(t *testing.T) {
	tests := []struct {
		name     string
		excludes []string
		recName  string
		want     bool
	}{
		{"no_excludes", nil, "Applications / Cursor", false},
		{"exact_keyword", []string{"Cursor"}, "Applications / Cursor", true},
		{"case_insensitive", []string{"cursor"}, "Applications / CURSOR", true},
		{"substring", []string{"Chrome"}, "Applications / Google Chrome / Helper", true},
		{"no_match", []string{"Chrome"}, "Applications / Firefox", false},
		{"second_keyword_matches", []string{"Chrome", "node"}, "(no path) / node", true},
		{"empty_keyword_ignored", []string{""}, "(no path) / node", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.excludes, "")
			if got := f.IsExcluded(Record{Name: tt.recName}); got != tt.want {
				t.Errorf("IsExcluded(%q) with %v = %v, want %v", tt.recName, tt.excludes, got, tt.want)
			}
		})
	}
}

func TestFilter_MatchesName(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		recName string
		want    bool
	}{
		{"empty_filter_matches_all", "", "Applications / Safari", true},
		{"match", "safari", "Applications / Safari", true},
		{"case_insensitive", "SAFARI", "Applications / safari", true},
		{"no_match", "chrome", "Applications / Safari", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(nil, tt.filter)
			if got := f.MatchesName(Record{Name: tt.recName}); got != tt.want {
				t.Errorf("MatchesName(%q) with filter %q = %v, want %v", tt.recName, tt.filter, got, tt.want)
			}
		})
	}
}

func TestParseExcludes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Cursor", []string{"Cursor"}},
		{"multiple", "Cursor,Google Chrome", []string{"Cursor", "Google Chrome"}},
		{"whitespace_trimmed", " Cursor , node ", []string{"Cursor", "node"}},
		{"empty_entries_dropped", "Cursor,,node,", []string{"Cursor", "node"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExcludes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseExcludes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
