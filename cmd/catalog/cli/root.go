// Package cli implements the catalog terminal browser.
package cli

import (
	"io"
	"os"

	"github.com/catalogpro/catalog/app/selection"
	"github.com/catalogpro/catalog/app/storefront"
	"github.com/catalogpro/catalog/client"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

// NewRootCmd builds the command tree writing views to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	var apiURL string
	newClient := func() *client.Client { return client.New(apiURL) }

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse the product catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)

	url := defaultAPIURL
	if env, ok := os.LookupEnv("CATALOG_API_URL"); ok {
		url = env
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", url, "base URL of the catalog API")

	root.AddCommand(newListCmd(newClient), newShowCmd(newClient))
	return root
}

func newListCmd(newClient func() *client.Client) *cobra.Command {
	var typeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products grouped by product type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := selection.New()
			state.SelectProductType(typeID)
			selected, _ := state.ProductType()

			types, products, err := newClient().Catalog(cmd.Context(), selected)
			if err != nil {
				return err
			}
			return storefront.RenderCatalog(cmd.OutOrStdout(), storefront.GroupByType(types, products, selected))
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "", "only show products of this product type id")
	return cmd
}

func newShowCmd(newClient func() *client.Client) *cobra.Command {
	var (
		sku    string
		addOns []string
	)

	cmd := &cobra.Command{
		Use:   "show PRODUCT_ID",
		Short: "Show a product with the chosen variant and add-ons priced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, typeAddOns, err := newClient().ProductPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			state := selection.New()
			if sku != "" {
				found := false
				for _, v := range product.Variants {
					if v.SKU == sku {
						state.SelectVariant(selection.DefaultGroup, v)
						found = true
						break
					}
				}
				if !found {
					return &UnknownChoiceError{Kind: "variant", Value: sku}
				}
			}
			offered := storefront.OfferedAddOns(*product, typeAddOns)
			for _, id := range addOns {
				found := false
				for _, a := range offered {
					if a.ID == id {
						if !state.IsAddOnSelected(id) {
							state.ToggleAddOn(a)
						}
						found = true
						break
					}
				}
				if !found {
					return &UnknownChoiceError{Kind: "add-on", Value: id}
				}
			}

			return storefront.RenderDetail(cmd.OutOrStdout(), storefront.NewDetail(*product, typeAddOns, state))
		},
	}
	cmd.Flags().StringVar(&sku, "variant", "", "select the variant with this SKU")
	cmd.Flags().StringSliceVar(&addOns, "addon", nil, "select an offered add-on by id (repeatable)")
	return cmd
}

// UnknownChoiceError reports a --variant or --addon value the product page
// does not offer.
type UnknownChoiceError struct {
	Kind  string
	Value string
}

func (e *UnknownChoiceError) Error() string {
	return "unknown " + e.Kind + " " + e.Value
}
