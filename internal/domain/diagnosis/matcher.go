package diagnosis

import (
	"sort"
	"strings"
)

// Weights holds the scoring constants used by the matcher.
type Weights struct {
	Keyword     int `json:"keyword"`
	Description int `json:"description"`
	Code        int `json:"code"`
	// Limit caps the number of results returned by Match.
	Limit int `json:"limit"`
}

// DefaultWeights returns the stock scoring: 10 per keyword, 20 for the
// description, 50 for the code itself, top 5 results.
func DefaultWeights() Weights {
	return Weights{
		Keyword:     10,
		Description: 20,
		Code:        50,
		Limit:       5,
	}
}

func (w Weights) withDefaults() Weights {
	d := DefaultWeights()
	if w.Keyword <= 0 {
		w.Keyword = d.Keyword
	}
	if w.Description <= 0 {
		w.Description = d.Description
	}
	if w.Code <= 0 {
		w.Code = d.Code
	}
	if w.Limit <= 0 {
		w.Limit = d.Limit
	}
	return w
}

// indexedEntry caches the lower-cased forms of an entry's match terms.
type indexedEntry struct {
	entry       Entry
	code        string
	description string
	keywords    []string
}

// Matcher scores catalog entries against free clinical text. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	weights Weights
	entries []indexedEntry
	byCode  map[string]int
}

// NewMatcher returns a matcher over the built-in ICD-10 catalog.
func NewMatcher(w Weights) *Matcher {
	return NewMatcherWithEntries(catalog, w)
}

// NewMatcherWithEntries returns a matcher over a caller-supplied catalog.
// Entries are copied, so later changes to the slice have no effect.
func NewMatcherWithEntries(entries []Entry, w Weights) *Matcher {
	m := &Matcher{
		weights: w.withDefaults(),
		entries: make([]indexedEntry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		ie := indexedEntry{
			entry:       e.clone(),
			code:        strings.ToLower(e.Code),
			description: strings.ToLower(e.Description),
			keywords:    make([]string, 0, len(e.Keywords)),
		}
		for _, kw := range e.Keywords {
			ie.keywords = append(ie.keywords, strings.ToLower(kw))
		}
		if _, dup := m.byCode[e.Code]; !dup {
			m.byCode[e.Code] = len(m.entries)
		}
		m.entries = append(m.entries, ie)
	}
	return m
}

// Weights returns the effective scoring constants.
func (m *Matcher) Weights() Weights {
	return m.weights
}

// Match ranks catalog entries by how much of them appears in text. Matching
// is plain case-insensitive substring containment: no stemming and no
// tokenization, so "backpain" does not match "back pain".
func (m *Matcher) Match(text string) []MatchResult {
	results := []MatchResult{}
	if text == "" {
		return results
	}
	lower := strings.ToLower(text)

	for _, ie := range m.entries {
		score := 0
		for _, kw := range ie.keywords {
			if kw != "" && strings.Contains(lower, kw) {
				score += m.weights.Keyword
			}
		}
		if ie.description != "" && strings.Contains(lower, ie.description) {
			score += m.weights.Description
		}
		if ie.code != "" && strings.Contains(lower, ie.code) {
			score += m.weights.Code
		}
		if score > 0 {
			results = append(results, MatchResult{Entry: ie.entry.clone(), Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > m.weights.Limit {
		results = results[:m.weights.Limit]
	}
	return results
}

// SuggestMedications returns the union of common medications for the given
// codes in first-seen order. Unknown codes are ignored.
func (m *Matcher) SuggestMedications(codes []string) []string {
	meds := []string{}
	seen := make(map[string]bool)
	for _, code := range codes {
		idx, ok := m.byCode[code]
		if !ok {
			continue
		}
		for _, med := range m.entries[idx].entry.CommonMedications {
			if seen[med] {
				continue
			}
			seen[med] = true
			meds = append(meds, med)
		}
	}
	return meds
}

// Lookup returns the entry with the exact code.
func (m *Matcher) Lookup(code string) (Entry, bool) {
	idx, ok := m.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return m.entries[idx].entry.clone(), true
}

// Entries returns a copy of the catalog in catalog order, optionally
// restricted to one category (case-insensitive).
func (m *Matcher) Entries(category string) []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, ie := range m.entries {
		if category != "" && !strings.EqualFold(ie.entry.Category, category) {
			continue
		}
		out = append(out, ie.entry.clone())
	}
	return out
}

// Categories lists the distinct categories in first-seen order.
func (m *Matcher) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, ie := range m.entries {
		if !seen[ie.entry.Category] {
			seen[ie.entry.Category] = true
			cats = append(cats, ie.entry.Category)
		}
	}
	return cats
}

var defaultMatcher = NewMatcher(DefaultWeights())

// Match scores text against the built-in catalog with default weights.
func Match(text string) []MatchResult {
	return defaultMatcher.Match(text)
}

// SuggestMedications suggests medications from the built-in catalog.
func SuggestMedications(codes []string) []string {
	return defaultMatcher.SuggestMedications(codes)
}
