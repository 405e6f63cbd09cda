package timesheet

import "strings"

// UncategorizedCategory is reported for tasks with no category mapping.
const UncategorizedCategory = "uncategorized"

// builtinAliases corrects recurring typos seen in hand-written task tags.
// Config-supplied aliases are merged on top and win on conflict.
var builtinAliases = map[string]string{
	"webiste":  "website",
	"wesbite":  "website",
	"animalai": "animal-ai",
	"admins":   "admin",
}

// builtinCategories buckets common tasks into reporting categories.
var builtinCategories = map[string]string{
	"website":   "projects",
	"animal-ai": "projects",
	"admin":     "overhead",
	"email":     "overhead",
	"meeting":   "overhead",
}

// Lookup resolves task typos to canonical names and tasks to report
// categories. Built once per run from the built-in tables plus config
// overrides; read-only afterwards.
type Lookup struct {
	aliases    map[string]string
	categories map[string]string
}

// NewLookup merges config-supplied alias and category tables over the
// built-in defaults.
func NewLookup(aliases, categories map[string]string) *Lookup {
	l := &Lookup{
		aliases:    make(map[string]string, len(builtinAliases)+len(aliases)),
		categories: make(map[string]string, len(builtinCategories)+len(categories)),
	}
	for k, v := range builtinAliases {
		l.aliases[k] = v
	}
	for k, v := range aliases {
		l.aliases[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	for k, v := range builtinCategories {
		l.categories[k] = v
	}
	for k, v := range categories {
		l.categories[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return l
}

// Canonical trims a raw task tag and applies one alias hop. Unknown tags pass
// through unchanged; a blank tag stays blank (the entry remains untagged).
func (l *Lookup) Canonical(task string) string {
	task = strings.TrimSpace(task)
	if task == "" {
		return ""
	}
	if canonical, ok := l.aliases[task]; ok && canonical != "" {
		return canonical
	}
	return task
}

// Category returns the reporting category for a (canonical) task, or
// UncategorizedCategory when no mapping exists.
func (l *Lookup) Category(task string) string {
	if category, ok := l.categories[l.Canonical(task)]; ok && category != "" {
		return category
	}
	return UncategorizedCategory
}
