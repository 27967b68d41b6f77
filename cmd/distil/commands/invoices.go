package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// NewInvoicesCommand creates the invoices command.
func NewInvoicesCommand() *cobra.Command {
	var (
		projectID string
		start     string
		end       string
		detailed  bool
		regions   []string
	)

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List issued invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			invoices, err := client.Invoices().List(cmd.Context(), &distil.InvoiceListOptions{
				ProjectID: projectID,
				Start:     start,
				End:       end,
				Detailed:  detailed,
				Regions:   regions,
			})
			if err != nil {
				return fmt.Errorf("listing invoices: %w", err)
			}

			rendered, err := renderStructured(resourceMaps(invoices))
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Date", "Status", "Total Cost")

			for _, resource := range invoices {
				var invoice distil.Invoice
				if err := resource.Decode(&invoice); err != nil {
					return err
				}

				_ = table.Append(invoice.ID, invoice.Date, invoice.Status,
					fmt.Sprintf("%.2f", invoice.TotalCost))
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project to list invoices for")
	cmd.Flags().StringVar(&start, "start", "", "start of the range")
	cmd.Flags().StringVar(&end, "end", "", "end of the range")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "break each invoice down per resource")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "restrict to one or more regions")

	return cmd
}
