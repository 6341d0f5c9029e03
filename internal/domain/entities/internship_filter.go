package entities

import "strings"

// InternshipFilter narrows a catalog listing. Every set field must match.
type InternshipFilter struct {
	Search     string
	Location   string
	Type       InternshipType
	MinStipend int64
	Skills     []string
	Limit      int
	Offset     int
}

func (f InternshipFilter) Normalize() InternshipFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)
	f.Skills = normalizeSkills(f.Skills)
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Matches applies the filter in memory using the same rules the document store query follows.
func (f InternshipFilter) Matches(i *Internship) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(i.Title), needle) &&
			!strings.Contains(strings.ToLower(i.Description), needle) &&
			!strings.Contains(strings.ToLower(i.Company), needle) {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(i.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Type != "" && i.Type != f.Type {
		return false
	}
	if f.MinStipend > 0 && i.Stipend < f.MinStipend {
		return false
	}
	if len(f.Skills) > 0 && !intersects(i.Skills, f.Skills) {
		return false
	}
	return true
}

// Page slices an already filtered and sorted list.
func (f InternshipFilter) Page(items []*Internship) []*Internship {
	if f.Offset >= len(items) {
		return []*Internship{}
	}
	items = items[f.Offset:]
	if f.Limit > 0 && f.Limit < len(items) {
		items = items[:f.Limit]
	}
	return items
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
