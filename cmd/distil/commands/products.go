package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// NewProductsCommand creates the products command.
func NewProductsCommand() *cobra.Command {
	var regions []string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List rated products",
		Long:  "List the products the rating service charges for, with their rates and units",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			products, err := client.Products().List(cmd.Context(), &distil.ProductListOptions{
				Regions: regions,
			})
			if err != nil {
				return fmt.Errorf("listing products: %w", err)
			}

			rendered, err := renderStructured(resourceMaps(products))
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Region", "Category", "Rate", "Unit")

			for _, resource := range products {
				var product distil.Product
				if err := resource.Decode(&product); err != nil {
					return err
				}

				_ = table.Append(product.Name, product.Region, product.Category,
					fmt.Sprintf("%g", product.Rate), product.Unit)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringSliceVar(&regions, "region", nil, "restrict to one or more regions")

	return cmd
}
