package domain

// TaxonomyEntry is one leaf of the three-level budget category tree.
// The minor category is the join key: every minor category maps to
// exactly one middle and one major category.
type TaxonomyEntry struct {
	// Major is the top-level budget category.
	Major string

	// Middle is the mid-level budget category.
	Middle string

	// Minor is the leaf category and the unique join key.
	Minor string

	// Example is the canonical example phrase for the leaf.
	Example string

	// GeneralPhrase is the "general news phrasing" exemplar used for
	// embedding alongside Example.
	GeneralPhrase string
}

// Taxonomy is the ordered set of taxonomy leaves loaded once per run.
// Order is the file order; classification tie-breaks resolve to the
// earliest entry, so the ordering is part of the contract.
type Taxonomy struct {
	entries []TaxonomyEntry
}

// NewTaxonomy builds a Taxonomy preserving the given entry order.
func NewTaxonomy(entries []TaxonomyEntry) Taxonomy {
	return Taxonomy{entries: entries}
}

// Entries returns the leaves in file order.
func (t Taxonomy) Entries() []TaxonomyEntry {
	return t.entries
}

// Len returns the number of leaves.
func (t Taxonomy) Len() int {
	return len(t.entries)
}

// EmbeddingText composes the sentence embedded for a taxonomy leaf:
// the example phrase followed by its general news phrasing.
func (e TaxonomyEntry) EmbeddingText() string {
	return e.Example + " " + e.GeneralPhrase
}
