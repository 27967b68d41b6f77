package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// NewMeasurementsCommand creates the measurements command.
func NewMeasurementsCommand() *cobra.Command {
	var (
		projectID string
		start     string
		end       string
		regions   []string
	)

	cmd := &cobra.Command{
		Use:   "measurements",
		Short: "List raw usage measurements",
		Long:  "List the usage measurements collected for a project over a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			measurements, err := client.Measurements().List(cmd.Context(), &distil.MeasurementListOptions{
				ProjectID: projectID,
				Start:     start,
				End:       end,
				Regions:   regions,
			})
			if err != nil {
				return fmt.Errorf("listing measurements: %w", err)
			}

			rendered, err := renderStructured(resourceMaps(measurements))
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Resource", "Service", "Volume", "Unit")

			for _, resource := range measurements {
				var measurement distil.Measurement
				if err := resource.Decode(&measurement); err != nil {
					return err
				}

				name := measurement.ResourceName
				if name == "" {
					name = measurement.ResourceID
				}

				_ = table.Append(name, measurement.Service,
					fmt.Sprintf("%g", measurement.Volume), measurement.Unit)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project to report usage for")
	cmd.Flags().StringVar(&start, "start", "", "start of the range (e.g. 2026-01-01T00:00:00)")
	cmd.Flags().StringVar(&end, "end", "", "end of the range")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "restrict to one or more regions")

	return cmd
}
