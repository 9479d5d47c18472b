package storefront

import (
	"bytes"
	"testing"

	"github.com/catalogpro/catalog/app/selection"
	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// --- Helpers ---

var (
	food     = models.ProductType{ID: "t-food", Name: "Food"}
	clothing = models.ProductType{ID: "t-clothing", Name: "clothing"}
	books    = models.ProductType{ID: "t-books", Name: "books"}
)

func newVariant(productID, sku, price string, stock int) models.Variant {
	return models.Variant{
		ID:        "v-" + sku,
		ProductID: productID,
		Name:      sku,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		SKU:       sku,
	}
}

func newProduct(id, name string, t models.ProductType, variants ...models.Variant) models.ProductWithVariants {
	if variants == nil {
		variants = []models.Variant{}
	}
	return models.ProductWithVariants{
		Product: models.Product{
			ID:            id,
			Name:          name,
			Description:   name + " description",
			ProductTypeID: t.ID,
			Images:        datatypes.JSONSlice[string]{},
		},
		Variants:    variants,
		ProductType: t,
	}
}

func newAddOn(id, price string, available bool) models.AddOn {
	return models.AddOn{
		ID:            id,
		ProductTypeID: food.ID,
		Name:          "Extra " + id,
		Price:         decimal.RequireFromString(price),
		Available:     available,
	}
}

func pizza() models.ProductWithVariants {
	return newProduct("p-pizza", "Pizza", food,
		newVariant("p-pizza", "PZ-S", "10", 0),
		newVariant("p-pizza", "PZ-M", "12", 5),
		newVariant("p-pizza", "PZ-L", "15", 2),
		newVariant("p-pizza", "PZ-XL", "9", 1),
	)
}

// --- Tests: catalog ---

func TestNewCard(t *testing.T) {
	c := NewCard(pizza())

	assert.True(t, c.FromPrice)
	assert.Equal(t, "From $9.00", c.PriceText())
	assert.Equal(t, 8, c.TotalStock)
	assert.Equal(t, []string{"PZ-S", "PZ-M", "PZ-L"}, c.VariantNames)
	assert.Equal(t, 1, c.MoreVariants)

	single := NewCard(newProduct("p-tee", "Tee", clothing, newVariant("p-tee", "TEE", "20", 3)))
	assert.Equal(t, "$20.00", single.PriceText())
	assert.Empty(t, single.VariantNames)

	none := NewCard(newProduct("p-none", "Nothing", books))
	assert.Equal(t, "$0.00", none.PriceText())
	assert.Equal(t, 0, none.TotalStock)
}

func TestNewCardVariantLabels(t *testing.T) {
	sized := newVariant("p-tee", "TEE-S", "20", 1)
	sized.Attributes = datatypes.NewJSONType(map[string]string{"size": "S", "color": "red"})
	colored := newVariant("p-tee", "TEE-R", "20", 1)
	colored.Attributes = datatypes.NewJSONType(map[string]string{"color": "red"})
	plain := newVariant("p-tee", "TEE-X", "20", 1)

	c := NewCard(newProduct("p-tee", "Tee", clothing, sized, colored, plain))

	assert.Equal(t, []string{"S", "red", "TEE-X"}, c.VariantNames)
}

func TestGroupByType(t *testing.T) {
	types := []models.ProductType{food, clothing, books}
	products := []models.ProductWithVariants{
		newProduct("p-tee", "Tee", clothing),
		pizza(),
		newProduct("p-hoodie", "Hoodie", clothing),
	}

	testCases := []struct {
		name          string
		selectedType  string
		expectedTypes []string
		checkSections func(t *testing.T, sections []Section)
	}{
		{
			name:          "All types skip empty groups",
			expectedTypes: []string{"t-food", "t-clothing"},
			checkSections: func(t *testing.T, sections []Section) {
				assert.True(t, sections[0].OffersAddOn)
				assert.False(t, sections[1].OffersAddOn)
				require.Len(t, sections[1].Cards, 2)
				assert.Equal(t, "p-tee", sections[1].Cards[0].ID)
				assert.Equal(t, "p-hoodie", sections[1].Cards[1].ID)
			},
		},
		{
			name:          "Selected type only",
			selectedType:  "t-clothing",
			expectedTypes: []string{"t-clothing"},
		},
		{
			name:          "Selected type without products",
			selectedType:  "t-books",
			expectedTypes: []string{},
		},
		{
			name:          "Unknown selected type",
			selectedType:  "t-missing",
			expectedTypes: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sections := GroupByType(types, products, tc.selectedType)

			ids := make([]string, len(sections))
			for i, s := range sections {
				ids[i] = s.Type.ID
			}
			assert.Equal(t, tc.expectedTypes, ids)
			if tc.checkSections != nil {
				tc.checkSections(t, sections)
			}
		})
	}
}

// --- Tests: detail ---

func TestNewDetailDefaults(t *testing.T) {
	d := NewDetail(pizza(), nil, selection.New())

	assert.Equal(t, "10.00", d.BasePrice.StringFixed(2))
	assert.Equal(t, "10.00", d.Price.StringFixed(2))
	assert.Equal(t, BasePriceLabel, d.PriceLabel)
	require.NotNil(t, d.Current)
	assert.Equal(t, "PZ-S", d.SKU)
	assert.Equal(t, 0, d.Stock)
	assert.Equal(t, OutOfStock, d.Availability)
	assert.True(t, d.ShowVariantPicker())
	assert.True(t, d.Variants[0].Selected)
}

func TestNewDetailWithSelection(t *testing.T) {
	p := pizza()
	s := selection.New()
	s.SelectVariant(selection.DefaultGroup, p.Variants[2])
	s.ToggleAddOn(newAddOn("cheese", "1.5", true))

	addOns := []models.AddOn{
		newAddOn("cheese", "1.5", true),
		newAddOn("truffle", "4", false),
		newAddOn("bacon", "2", true),
	}

	d := NewDetail(p, addOns, s)

	assert.Equal(t, "PZ-L", d.SKU)
	assert.Equal(t, 2, d.Stock)
	assert.Equal(t, InStock, d.Availability)
	assert.Equal(t, "16.50", d.Price.StringFixed(2))
	assert.Equal(t, TotalPriceLabel, d.PriceLabel)

	require.Len(t, d.AddOns, 3)
	assert.Equal(t, "cheese", d.AddOns[0].ID)
	assert.True(t, d.AddOns[0].Selected)
	assert.Equal(t, "truffle", d.AddOns[1].ID)
	assert.False(t, d.AddOns[1].Available)
	assert.False(t, d.AddOns[2].Selected)
}

func TestNewDetailPricesOnlyOfferedAddOns(t *testing.T) {
	tee := newProduct("p-tee", "Tee", clothing, newVariant("p-tee", "TEE", "20", 3))

	testCases := []struct {
		name          string
		product       models.ProductWithVariants
		addOns        []models.AddOn
		selected      models.AddOn
		expectedPrice string
	}{
		{
			name:          "Unavailable add-on on a food product",
			product:       pizza(),
			addOns:        []models.AddOn{newAddOn("truffle", "5", false)},
			selected:      newAddOn("truffle", "5", false),
			expectedPrice: "10.00",
		},
		{
			name:          "Add-on on a non-food product",
			product:       tee,
			addOns:        []models.AddOn{newAddOn("cheese", "1.5", true)},
			selected:      newAddOn("cheese", "1.5", true),
			expectedPrice: "20.00",
		},
		{
			name:          "Add-on outside the product type's list",
			product:       pizza(),
			addOns:        []models.AddOn{newAddOn("cheese", "1.5", true)},
			selected:      newAddOn("bacon", "2", true),
			expectedPrice: "10.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s := selection.New()
			s.ToggleAddOn(tc.selected)

			// Act
			d := NewDetail(tc.product, tc.addOns, s)

			// Assert
			assert.Equal(t, tc.expectedPrice, d.Price.StringFixed(2))
			assert.Equal(t, BasePriceLabel, d.PriceLabel)
			for _, a := range d.AddOns {
				assert.False(t, a.Selected)
			}
		})
	}
}

func TestOfferedAddOns(t *testing.T) {
	addOns := []models.AddOn{newAddOn("cheese", "1.5", true), newAddOn("truffle", "5", false)}

	offered := OfferedAddOns(pizza(), addOns)
	require.Len(t, offered, 1)
	assert.Equal(t, "cheese", offered[0].ID)

	tee := newProduct("p-tee", "Tee", clothing)
	assert.Empty(t, OfferedAddOns(tee, addOns))
}

func TestNewDetailIgnoresForeignVariant(t *testing.T) {
	s := selection.New()
	s.SelectVariant(selection.DefaultGroup, newVariant("p-other", "OTHER", "99", 1))

	d := NewDetail(pizza(), nil, s)

	assert.Equal(t, "PZ-S", d.SKU)
	assert.Equal(t, "10.00", d.Price.StringFixed(2))
}

func TestNewDetailNonFoodHasNoAddOns(t *testing.T) {
	tee := newProduct("p-tee", "Tee", clothing, newVariant("p-tee", "TEE", "20", 3))

	d := NewDetail(tee, []models.AddOn{newAddOn("cheese", "1.5", true)}, selection.New())

	assert.Empty(t, d.AddOns)
	assert.False(t, d.ShowVariantPicker())
}

func TestNewDetailWithoutVariants(t *testing.T) {
	d := NewDetail(newProduct("p-none", "Nothing", books), nil, selection.New())

	assert.Nil(t, d.Current)
	assert.Equal(t, "N/A", d.SKU)
	assert.Equal(t, "0.00", d.Price.StringFixed(2))
	assert.Equal(t, OutOfStock, d.Availability)
}

// --- Tests: rendering ---

func TestRenderCatalog(t *testing.T) {
	sections := GroupByType([]models.ProductType{food}, []models.ProductWithVariants{pizza()}, "")

	var buf bytes.Buffer
	require.NoError(t, RenderCatalog(&buf, sections))

	out := buf.String()
	assert.Contains(t, out, "== Food (Add-ons Available) ==")
	assert.Contains(t, out, "1 products")
	assert.Contains(t, out, "From $9.00")
	assert.Contains(t, out, "PZ-S, PZ-M, PZ-L +1")
}

func TestRenderCatalogEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCatalog(&buf, nil))
	assert.Equal(t, "No Products Available\n", buf.String())

	buf.Reset()
	sections := GroupByType([]models.ProductType{food, books}, []models.ProductWithVariants{pizza()}, books.ID)
	require.NoError(t, RenderCatalog(&buf, sections))
	assert.Equal(t, "No Products Available\n", buf.String())
}

func TestRenderDetail(t *testing.T) {
	s := selection.New()
	s.ToggleAddOn(newAddOn("cheese", "1.5", true))
	d := NewDetail(pizza(), []models.AddOn{newAddOn("cheese", "1.5", true)}, s)

	var buf bytes.Buffer
	require.NoError(t, RenderDetail(&buf, d))

	out := buf.String()
	assert.Contains(t, out, "Catalog / Food / Pizza")
	assert.Contains(t, out, "$11.50")
	assert.Contains(t, out, "Total Price")
	assert.Contains(t, out, "Select Options")
	assert.Contains(t, out, "[x] PZ-S")
	assert.Contains(t, out, "[x] cheese")
	assert.Contains(t, out, "Out of Stock")
}

func TestRenderDetailUnavailableAddOn(t *testing.T) {
	d := NewDetail(pizza(), []models.AddOn{newAddOn("truffle", "5", false)}, selection.New())

	var buf bytes.Buffer
	require.NoError(t, RenderDetail(&buf, d))

	out := buf.String()
	assert.Contains(t, out, "Customize Your Order")
	assert.Contains(t, out, "[-] truffle")
	assert.Contains(t, out, "Unavailable")
}
