package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// NewQuotationsCommand creates the quotations command.
func NewQuotationsCommand() *cobra.Command {
	var (
		projectID string
		detailed  bool
		regions   []string
	)

	cmd := &cobra.Command{
		Use:   "quotations",
		Short: "Show the month-to-date cost estimate",
		Long:  "Show the estimated cost of the current, not yet invoiced, billing period",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			quotations, err := client.Quotations().List(cmd.Context(), &distil.QuotationListOptions{
				ProjectID: projectID,
				Detailed:  detailed,
				Regions:   regions,
			})
			if err != nil {
				return fmt.Errorf("listing quotations: %w", err)
			}

			rendered, err := renderStructured(resourceMaps(quotations))
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Date", "Total Cost")

			for _, resource := range quotations {
				var quotation distil.Quotation
				if err := resource.Decode(&quotation); err != nil {
					return err
				}

				_ = table.Append(quotation.Date, fmt.Sprintf("%.2f", quotation.TotalCost))
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project to quote")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "break the quotation down per resource")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "restrict to one or more regions")

	return cmd
}
