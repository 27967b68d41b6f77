package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command.
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show rating service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			health, err := client.Health().Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("getting health: %w", err)
			}

			if health == nil {
				fmt.Println("No health information available")

				return nil
			}

			rendered, err := renderStructured(health.Fields())
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Subsystem", "Status", "Message")

			for _, name := range health.FieldNames() {
				status := ""
				message := ""

				if subsystem, err := health.Field(name); err == nil {
					if fields, ok := subsystem.(map[string]any); ok {
						status = fmt.Sprintf("%v", fields["status"])
						message = fmt.Sprintf("%v", fields["msg"])
					}
				}

				_ = table.Append(name, status, message)
			}

			return table.Render()
		},
	}

	return cmd
}
