package proc

import "strings"

// Filter holds the user-supplied exclusion keywords and name filter.
// Both match case-insensitively against the shortened display name.
type Filter struct {
	Excludes   []string
	NameFilter string
}

// NewFilter creates a Filter from an exclusion list and a name filter
// keyword. Either may be empty.
func NewFilter(excludes []string, nameFilter string) *Filter {
	return &Filter{Excludes: excludes, NameFilter: nameFilter}
}

// IsExcluded reports whether any exclusion keyword occurs in the record's
// display name.
func (f *Filter) IsExcluded(r Record) bool {
	if len(f.Excludes) == 0 {
		return false
	}
	name := strings.ToLower(r.Name)
	for _, keyword := range f.Excludes {
		if keyword == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// MatchesName reports whether the record's display name contains the name
// filter keyword. An empty filter matches everything.
func (f *Filter) MatchesName(r Record) bool {
	if f.NameFilter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.NameFilter))
}

// ParseExcludes splits a comma-separated exclusion flag value into trimmed
// keywords, dropping empty entries.
func ParseExcludes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
