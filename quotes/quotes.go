// Package quotes maps authors to the quote shown when their blossom is selected.
package quotes

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var defaultQuotes []byte

// NotFound is returned by Quote for unknown authors.
const NotFound = "No quote found"

// Entry is one row of the table.
type Entry struct {
	Author string `yaml:"author"`
	Quote  string `yaml:"quote"`
}

type document struct {
	Quotes []Entry `yaml:"quotes"`
}

// Table is an ordered author/quote list with a lookup index.
type Table struct {
	entries []Entry
	index   map[string]string
}

// New builds a table from entries. The first entry for an author wins.
func New(entries []Entry) *Table {
	t := &Table{
		entries: append([]Entry(nil), entries...),
		index:   make(map[string]string, len(entries)),
	}
	for _, e := range t.entries {
		if _, ok := t.index[e.Author]; !ok {
			t.index[e.Author] = e.Quote
		}
	}
	return t
}

// Default returns the embedded table.
func Default() *Table {
	t, err := Parse(defaultQuotes)
	if err != nil {
		panic(fmt.Sprintf("embedded quotes: %v", err))
	}
	return t
}

// Parse reads a YAML document with a top-level "quotes" list.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing quotes: %w", err)
	}
	return New(doc.Quotes), nil
}

// Load reads a quote table from path. An empty path returns the embedded table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quotes file: %w", err)
	}
	return Parse(data)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Authors returns the authors in table order, duplicates included, for
// round-robin assignment.
func (t *Table) Authors() []string {
	authors := make([]string, len(t.entries))
	for i, e := range t.entries {
		authors[i] = e.Author
	}
	return authors
}

// Lookup returns the quote for author.
func (t *Table) Lookup(author string) (string, bool) {
	q, ok := t.index[author]
	return q, ok
}

// Quote returns the quote for author or NotFound.
func (t *Table) Quote(author string) string {
	if q, ok := t.Lookup(author); ok {
		return q
	}
	return NotFound
}
