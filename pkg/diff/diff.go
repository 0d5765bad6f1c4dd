package diff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"srs-hq/rulediff/pkg/rules"
)

// DuplicatePolicy names how repeated rule names within one document are
// resolved when building a name lookup.
type DuplicatePolicy string

// LastWriteWins is the only supported policy: a later rule with the same name
// shadows the description of an earlier one in the lookup, while both stay
// in the partitioned lists.
const LastWriteWins DuplicatePolicy = "last-write-wins"

// Result is the outcome of comparing two rule lists.
type Result struct {
	// Dropped holds old rules absent from the new list, in old order.
	Dropped []rules.Rule `json:"dropped"`

	// Added holds new rules absent from the old list, in new order.
	Added []rules.Rule `json:"added"`

	// Retained holds new rules present in the old list, in new order,
	// carrying the new description.
	Retained []rules.Rule `json:"retained"`

	// Changes lists retained rules whose description differs.
	Changes []Change `json:"changes,omitempty"`

	// Diagnostics describes duplicate handling.
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Change describes a retained rule whose description changed.
type Change struct {
	Name    string `json:"name"`
	Old     string `json:"old"`
	New     string `json:"new"`
	Unified string `json:"unified"`
}

// Diagnostics reports how duplicate names were resolved.
type Diagnostics struct {
	Policy DuplicatePolicy `json:"policy"`

	// OldShadowed is the number of old rules whose description was shadowed
	// by a later rule with the same name.
	OldShadowed int `json:"oldShadowed"`

	// NewShadowed is the same count for the new list.
	NewShadowed int `json:"newShadowed"`

	// DuplicateNames lists every name seen more than once on either side.
	DuplicateNames []string `json:"duplicateNames,omitempty"`
}

// lookup is a name to description index built with LastWriteWins.
type lookup struct {
	descriptions map[string]string
	shadowed     int
	duplicates   []string
}

func newLookup(list []rules.Rule) *lookup {
	l := &lookup{descriptions: make(map[string]string, len(list))}
	seen := make(map[string]int, len(list))
	for _, r := range list {
		if _, ok := l.descriptions[r.Name]; ok {
			l.shadowed++
		}
		l.descriptions[r.Name] = r.Description

		seen[r.Name]++
		if seen[r.Name] == 2 {
			l.duplicates = append(l.duplicates, r.Name)
		}
	}
	return l
}

func (l *lookup) has(name string) bool {
	_, ok := l.descriptions[name]
	return ok
}

// Compare partitions oldRules and newRules.
func Compare(oldRules, newRules []rules.Rule) *Result {
	oldLookup := newLookup(oldRules)
	newLookup := newLookup(newRules)

	res := &Result{
		Dropped:  []rules.Rule{},
		Added:    []rules.Rule{},
		Retained: []rules.Rule{},
		Diagnostics: Diagnostics{
			Policy:         LastWriteWins,
			OldShadowed:    oldLookup.shadowed,
			NewShadowed:    newLookup.shadowed,
			DuplicateNames: mergeNames(oldLookup.duplicates, newLookup.duplicates),
		},
	}

	for _, r := range oldRules {
		if !newLookup.has(r.Name) {
			res.Dropped = append(res.Dropped, r)
		}
	}

	reported := make(map[string]bool)
	for _, r := range newRules {
		if !oldLookup.has(r.Name) {
			res.Added = append(res.Added, r)
			continue
		}
		res.Retained = append(res.Retained, r)

		// One change per name, against the descriptions each lookup resolved.
		if reported[r.Name] {
			continue
		}
		reported[r.Name] = true
		oldDesc := oldLookup.descriptions[r.Name]
		newDesc := newLookup.descriptions[r.Name]
		if oldDesc != newDesc {
			res.Changes = append(res.Changes, Change{
				Name:    r.Name,
				Old:     oldDesc,
				New:     newDesc,
				Unified: udiff.Unified(r.Name+" (old)", r.Name+" (new)", lines(oldDesc), lines(newDesc)),
			})
		}
	}

	return res
}

// lines makes single-line markup diffable by breaking after each <br/>.
func lines(s string) string {
	s = strings.ReplaceAll(s, rules.LineBreak, rules.LineBreak+"\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

func mergeNames(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Summary is the partition sizes of a Result.
type Summary struct {
	Dropped  int `json:"dropped"`
	Added    int `json:"added"`
	Retained int `json:"retained"`
	Changed  int `json:"changed"`
}

// Summary returns the partition sizes.
func (r *Result) Summary() Summary {
	return Summary{
		Dropped:  len(r.Dropped),
		Added:    len(r.Added),
		Retained: len(r.Retained),
		Changed:  len(r.Changes),
	}
}
