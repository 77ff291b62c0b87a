// Package corpus provides the reference tables of the supported texts: the
// unit bounds of every tractate, masechet or topic a chart can be drawn for.
package corpus

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.yaml
var tables embed.FS

// Kind names a supported text corpus.
type Kind string

const (
	// Gemara charts Talmud Bavli tractates by daf.
	Gemara Kind = "gemara"
	// Mishnayot charts masechtot by perek, or by mishnah with item tokens.
	Mishnayot Kind = "mishnayot"
	// MishnaBerura charts chalakim and topics by siman.
	MishnaBerura Kind = "mishna-berura"
)

// Kinds lists the corpora in catalog order.
var Kinds = []Kind{Gemara, Mishnayot, MishnaBerura}

var (
	// ErrUnknownCorpus indicates a corpus name outside Kinds.
	ErrUnknownCorpus = errors.New("unknown corpus")
	// ErrUnknownContent indicates a content id missing from a corpus table.
	ErrUnknownContent = errors.New("unknown content id")
)

// ParseKind resolves a corpus name. The empty name selects Gemara.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gemara", "talmud", "bavli":
		return Gemara, nil
	case "mishnayot", "mishna", "mishnah":
		return Mishnayot, nil
	case "mishna-berura", "mishnaberura", "mishna_berura":
		return MishnaBerura, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCorpus, s)
}

// UnitLabel is the header of the unit column for charts of this corpus.
func (k Kind) UnitLabel() string {
	switch k {
	case Mishnayot:
		return "Mishnah"
	case MishnaBerura:
		return "Siman"
	default:
		return "Daf"
	}
}

// SubUnits reports whether units of this corpus split into an a/b pair.
func (k Kind) SubUnits() bool {
	return k == Gemara
}

// Entry is one chartable content id with its unit bounds.
type Entry struct {
	Name string `json:"name"`
	// Group is the seder or chelek holding the entry; empty for gemara.
	Group string `json:"group,omitempty"`
	First int `json:"first"`
	Last  int `json:"last"`
	// Items holds the mishnah count of every perek, indexed from perek 1.
	Items []int `json:"items,omitempty"`
}

// ItemCount reports the number of items in unit, for corpora with item tokens.
func (e Entry) ItemCount(unit int) (int, bool) {
	if unit < 1 || unit > len(e.Items) {
		return 0, false
	}
	return e.Items[unit-1], true
}

// Clamp limits unit to the entry bounds.
func (e Entry) Clamp(unit int) int {
	return min(max(unit, e.First), e.Last)
}

// Catalog is the read-only lookup over all corpus tables.
type Catalog struct {
	entries map[Kind][]Entry
	index   map[Kind]map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded tables, loading it once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// Load parses the embedded tables into a new Catalog.
func Load() (*Catalog, error) {
	c := &Catalog{
		entries: make(map[Kind][]Entry),
		index:   make(map[Kind]map[string]int),
	}

	loaders := []struct {
		kind Kind
		file string
		load func([]byte) ([]Entry, error)
	}{
		{Gemara, "data/gemara.yaml", loadGemara},
		{Mishnayot, "data/mishnayot.yaml", loadMishnayot},
		{MishnaBerura, "data/mishnaberura.yaml", loadMishnaBerura},
	}
	for _, l := range loaders {
		raw, err := tables.ReadFile(l.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", l.file, err)
		}
		entries, err := l.load(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.file, err)
		}
		if err := c.add(l.kind, entries); err != nil {
			return nil, fmt.Errorf("%s: %w", l.file, err)
		}
	}
	return c, nil
}

func (c *Catalog) add(kind Kind, entries []Entry) error {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.First < 1 || e.Last < e.First {
			return fmt.Errorf("entry %q has invalid bounds %d..%d", e.Name, e.First, e.Last)
		}
		key := normalize(e.Name)
		if _, dup := idx[key]; dup {
			return fmt.Errorf("duplicate entry %q", e.Name)
		}
		idx[key] = i
	}
	c.entries[kind] = entries
	c.index[kind] = idx
	return nil
}

// Lookup finds a content id in a corpus. Names match case-insensitively.
func (c *Catalog) Lookup(kind Kind, id string) (Entry, error) {
	idx, ok := c.index[kind]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCorpus, kind)
	}
	i, ok := idx[normalize(id)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q in %s", ErrUnknownContent, id, kind)
	}
	return c.entries[kind][i], nil
}

// Entries lists the entries of a corpus in table order.
func (c *Catalog) Entries(kind Kind) []Entry {
	return append([]Entry(nil), c.entries[kind]...)
}

// Names lists the content ids of a corpus in table order.
func (c *Catalog) Names(kind Kind) []string {
	names := make([]string, 0, len(c.entries[kind]))
	for _, e := range c.entries[kind] {
		names = append(names, e.Name)
	}
	return names
}

// Groups lists the distinct groups of a corpus, sorted.
func (c *Catalog) Groups(kind Kind) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range c.entries[kind] {
		if e.Group != "" && !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Tractates maps every gemara tractate to its last daf.
func (c *Catalog) Tractates() map[string]int {
	out := make(map[string]int, len(c.entries[Gemara]))
	for _, e := range c.entries[Gemara] {
		out[e.Name] = e.Last
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
