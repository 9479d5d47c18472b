package selection

import (
	"sync"
	"testing"

	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variant(sku, price string) models.Variant {
	return models.Variant{ID: "v-" + sku, Name: sku, SKU: sku, Price: decimal.RequireFromString(price)}
}

func addOn(id, price string) models.AddOn {
	return models.AddOn{ID: id, Name: "addon " + id, Price: decimal.RequireFromString(price), Available: true}
}

func TestProductType(t *testing.T) {
	s := New()

	_, ok := s.ProductType()
	assert.False(t, ok)

	s.SelectProductType("food")
	id, ok := s.ProductType()
	assert.True(t, ok)
	assert.Equal(t, "food", id)

	s.ClearProductType()
	_, ok = s.ProductType()
	assert.False(t, ok)
}

func TestSelectVariantReplaces(t *testing.T) {
	s := New()

	s.SelectVariant(DefaultGroup, variant("S", "8"))
	s.SelectVariant(DefaultGroup, variant("L", "12"))

	got, ok := s.Variant(DefaultGroup)
	require.True(t, ok)
	assert.Equal(t, "L", got.Value)
	assert.Len(t, s.Variants(), 1)
	assert.Equal(t, "12.00", got.Price.StringFixed(2))
}

func TestToggleAddOn(t *testing.T) {
	s := New()
	cheese := addOn("cheese", "1.5")
	bacon := addOn("bacon", "2")

	assert.True(t, s.ToggleAddOn(cheese))
	assert.True(t, s.ToggleAddOn(bacon))
	assert.True(t, s.IsAddOnSelected("cheese"))

	before := s.AddOns()

	assert.False(t, s.ToggleAddOn(cheese))
	assert.False(t, s.IsAddOnSelected("cheese"))
	assert.True(t, s.ToggleAddOn(cheese))

	after := s.AddOns()
	assert.ElementsMatch(t, before, after)
}

func TestAddOnPriceIsSnapshotted(t *testing.T) {
	s := New()
	cheese := addOn("cheese", "1.5")
	s.ToggleAddOn(cheese)

	cheese.Price = decimal.RequireFromString("9")

	assert.Equal(t, "1.50", s.AddOns()[0].Price.StringFixed(2))
	assert.Equal(t, "11.50", s.Total(decimal.RequireFromString("10")).StringFixed(2))
}

func TestTotal(t *testing.T) {
	s := New()
	base := decimal.RequireFromString("10")

	assert.Equal(t, "10.00", s.Total(base).StringFixed(2))

	s.SelectVariant(DefaultGroup, variant("L", "12"))
	assert.Equal(t, "12.00", s.Total(base).StringFixed(2))

	s.ToggleAddOn(addOn("cheese", "1.5"))
	s.ToggleAddOn(addOn("bacon", "0.5"))
	assert.Equal(t, "14.00", s.Total(base).StringFixed(2))
}

func TestClearSelection(t *testing.T) {
	s := New()
	s.SelectProductType("food")
	s.SelectVariant(DefaultGroup, variant("L", "12"))
	s.ToggleAddOn(addOn("cheese", "1.5"))

	s.ClearSelection()

	assert.Empty(t, s.Variants())
	assert.Empty(t, s.AddOns())
	id, _ := s.ProductType()
	assert.Equal(t, "food", id)
}

func TestConcurrentToggles(t *testing.T) {
	s := New()
	cheese := addOn("cheese", "1.5")

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleAddOn(cheese)
		}()
	}
	wg.Wait()

	assert.False(t, s.IsAddOnSelected("cheese"), "an even number of toggles cancels out")
}
