// Package selection holds the browsing state of one shopping session: the
// product type filter, the chosen variant per group and the chosen add-ons.
package selection

import (
	"maps"
	"slices"
	"sync"

	"github.com/catalogpro/catalog/app/pricing"
	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
)

// DefaultGroup is the only variant group in use: one variant per product.
const DefaultGroup = "default"

// SelectedVariant is a variant choice with its price at selection time.
type SelectedVariant struct {
	Value   string
	Price   decimal.Decimal
	Variant models.Variant
}

// SelectedAddOn snapshots an add-on when it is picked. Later price changes
// are not seen until it is picked again.
type SelectedAddOn struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// State is safe for concurrent use. The zero value is not usable; call New.
type State struct {
	mu          sync.RWMutex
	productType string
	variants    map[string]SelectedVariant
	addOns      []SelectedAddOn
}

func New() *State {
	return &State{variants: make(map[string]SelectedVariant)}
}

// SelectProductType narrows the catalog to one type. An empty id means all
// types.
func (s *State) SelectProductType(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productType = id
}

func (s *State) ClearProductType() {
	s.SelectProductType("")
}

// ProductType returns the selected type id and whether one is selected.
func (s *State) ProductType() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productType, s.productType != ""
}

// SelectVariant replaces whatever was chosen for group.
func (s *State) SelectVariant(group string, v models.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants[group] = SelectedVariant{Value: v.Name, Price: v.Price, Variant: v}
}

func (s *State) Variant(group string) (SelectedVariant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variants[group]
	return v, ok
}

// Variants returns a copy of the selected variants keyed by group.
func (s *State) Variants() map[string]SelectedVariant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.variants)
}

// ToggleAddOn selects a when it is not selected and deselects it otherwise.
// It reports whether a is selected afterwards.
func (s *State) ToggleAddOn(a models.AddOn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.addOnIndex(a.ID); i >= 0 {
		s.addOns = slices.Delete(s.addOns, i, i+1)
		return false
	}
	s.addOns = append(s.addOns, SelectedAddOn{ID: a.ID, Name: a.Name, Price: a.Price})
	return true
}

func (s *State) IsAddOnSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addOnIndex(id) >= 0
}

// AddOns returns the selected add-ons in selection order.
func (s *State) AddOns() []SelectedAddOn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.addOns)
}

// ClearSelection drops variant and add-on choices but keeps the type filter.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.variants)
	s.addOns = nil
}

// Total prices the current selection on top of base.
func (s *State) Total(base decimal.Decimal) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants := make(map[string]decimal.Decimal, len(s.variants))
	for g, v := range s.variants {
		variants[g] = v.Price
	}
	addOns := make([]decimal.Decimal, len(s.addOns))
	for i, a := range s.addOns {
		addOns[i] = a.Price
	}
	return pricing.Total(base, variants, addOns)
}

func (s *State) addOnIndex(id string) int {
	return slices.IndexFunc(s.addOns, func(a SelectedAddOn) bool { return a.ID == id })
}
