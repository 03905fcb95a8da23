package domain

// PricedProduct is one resolved (name, current price) pair.
type PricedProduct struct {
	Name  string
	Price float64
}

// PriceSet is an insertion-ordered set of resolved prices. Order matters:
// extrema selection breaks ties in favor of the entry inserted first, so
// the container must not reorder entries the way a plain map would.
type PriceSet struct {
	entries []PricedProduct
	index   map[string]int
}

// NewPriceSet creates an empty price set.
func NewPriceSet() *PriceSet {
	return &PriceSet{index: make(map[string]int)}
}

// Add inserts a price under the given name. Re-adding a name keeps the
// first entry untouched, giving the set map semantics over a stable order.
func (s *PriceSet) Add(name string, price float64) {
	if _, exists := s.index[name]; exists {
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, PricedProduct{Name: name, Price: price})
}

// Len returns the number of distinct entries.
func (s *PriceSet) Len() int {
	return len(s.entries)
}

// Entries returns the entries in insertion order. The returned slice is
// shared with the set and must not be mutated.
func (s *PriceSet) Entries() []PricedProduct {
	return s.entries
}

// Comparison is the result of extrema selection over a price set.
// For a single-entry set both sides report the same product.
type Comparison struct {
	Cheapest      PricedProduct
	MostExpensive PricedProduct
}
