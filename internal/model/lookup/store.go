package lookup

import "sort"

// Store exposes read-only name lookups for HTTP handlers.
type Store interface {
	Names() []string
	Find(name string) (Person, bool)
}

// Directory implements Store over a map copied at construction and never
// written afterwards, so it is safe for concurrent readers.
type Directory struct {
	items map[string]Person
}

// NewDirectory returns a Directory preloaded with the supplied entries.
func NewDirectory(items map[string]Person) *Directory {
	copied := make(map[string]Person, len(items))
	for name, p := range items {
		copied[name] = p
	}
	return &Directory{items: copied}
}

// Names returns the known names in sorted order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.items))
	for name := range d.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Find looks up a person by name.
func (d *Directory) Find(name string) (Person, bool) {
	p, ok := d.items[name]
	return p, ok
}
