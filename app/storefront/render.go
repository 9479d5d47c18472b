package storefront

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/catalogpro/catalog/app/pricing"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + pricing.Display(d)
}

func (c Card) PriceText() string {
	if c.FromPrice {
		return "From " + money(c.MinPrice)
	}
	return money(c.MinPrice)
}

// RenderCatalog writes the grouped listing as aligned columns.
func RenderCatalog(w io.Writer, sections []Section) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No Products Available")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		heading := s.Type.Name
		if heading == "" {
			heading = s.Type.ID
		}
		if s.OffersAddOn {
			heading += " (Add-ons Available)"
		}
		fmt.Fprintf(tw, "== %s ==\t%d products\n", heading, len(s.Cards))

		for _, c := range s.Cards {
			options := strings.Join(c.VariantNames, ", ")
			if c.MoreVariants > 0 {
				options += fmt.Sprintf(" +%d", c.MoreVariants)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d in stock\t%s\n", c.ID, c.Name, c.PriceText(), c.TotalStock, options)
		}
	}
	return tw.Flush()
}

// RenderDetail writes the product page.
func RenderDetail(w io.Writer, d Detail) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := d.Product

	fmt.Fprintf(tw, "Catalog / %s / %s\n\n", p.ProductType.Name, p.Name)
	fmt.Fprintf(tw, "%s\n%s\n\n", p.Name, p.Description)
	fmt.Fprintf(tw, "%s\t%s\n", money(d.Price), d.PriceLabel)
	fmt.Fprintf(tw, "Stock Available\t%d units\n", d.Stock)

	if d.ShowVariantPicker() {
		fmt.Fprintln(tw, "\nSelect Options")
		for _, v := range d.Variants {
			stock := "Out of stock"
			if v.Stock > 0 {
				stock = fmt.Sprintf("%d available", v.Stock)
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker(v.Selected), v.SKU, v.Name, money(v.Price), stock)
		}
	}

	if len(d.AddOns) > 0 {
		fmt.Fprintln(tw, "\nCustomize Your Order")
		for _, a := range d.AddOns {
			desc := ""
			if a.Description != nil {
				desc = *a.Description
			}
			mark := marker(a.Selected)
			if !a.Available {
				mark, desc = "[-]", "Unavailable"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t+%s\t%s\n", mark, a.ID, a.Name, money(a.Price), desc)
		}
	}

	fmt.Fprintln(tw, "\nProduct Details")
	fmt.Fprintf(tw, "SKU:\t%s\n", d.SKU)
	fmt.Fprintf(tw, "Category:\t%s\n", p.ProductType.Name)
	fmt.Fprintf(tw, "Availability:\t%s\n", d.Availability)
	fmt.Fprintf(tw, "Product ID:\t%s\n", p.ID)
	return tw.Flush()
}

func marker(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}
