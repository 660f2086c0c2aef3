package models

// PlacementPlan groups scanned files by category. It preserves two
// orderings: categories iterate in first-insertion order, and files within
// a category keep the order in which the scan produced them. The plan is
// built once per run and not mutated afterwards.
type PlacementPlan struct {
	keys   []CategoryKey
	groups map[CategoryKey][]DirEntry
}

// NewPlacementPlan creates an empty plan.
func NewPlacementPlan() *PlacementPlan {
	return &PlacementPlan{
		groups: make(map[CategoryKey][]DirEntry),
	}
}

// Add appends an entry to its category group, registering the category on
// first encounter.
func (p *PlacementPlan) Add(key CategoryKey, entry DirEntry) {
	if _, ok := p.groups[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.groups[key] = append(p.groups[key], entry)
}

// Categories returns the category keys in first-insertion order.
func (p *PlacementPlan) Categories() []CategoryKey {
	keys := make([]CategoryKey, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Files returns the entries assigned to a category, in scan order.
func (p *PlacementPlan) Files(key CategoryKey) []DirEntry {
	return p.groups[key]
}

// FileCount returns the total number of entries across all categories.
func (p *PlacementPlan) FileCount() int {
	n := 0
	for _, entries := range p.groups {
		n += len(entries)
	}
	return n
}

// Empty reports whether the plan contains no files.
func (p *PlacementPlan) Empty() bool {
	return len(p.keys) == 0
}
