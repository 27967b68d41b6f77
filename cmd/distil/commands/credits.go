package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// NewCreditsCommand creates the credits command group.
func NewCreditsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Manage project credits",
	}

	cmd.AddCommand(newCreditsListCommand())
	cmd.AddCommand(newCreditsRedeemCommand())

	return cmd
}

func newCreditsListCommand() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credits held by a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			credits, err := client.Credits().List(cmd.Context(), projectID)
			if err != nil {
				return fmt.Errorf("listing credits: %w", err)
			}

			rendered, err := renderStructured(resourceMaps(credits))
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Code", "Type", "Balance", "Expires")

			for _, resource := range credits {
				var credit distil.Credit
				if err := resource.Decode(&credit); err != nil {
					return err
				}

				_ = table.Append(credit.Code, credit.Type,
					fmt.Sprintf("%.2f", credit.Balance), credit.ExpiryDate)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "project to list credits for")

	return cmd
}

func newCreditsRedeemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem CODE",
		Short: "Redeem a credit code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			credit, err := client.Credits().Create(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("redeeming credit: %w", err)
			}

			rendered, err := renderStructured(credit.Fields())
			if err != nil || rendered {
				return err
			}

			fmt.Printf("Redeemed credit %s\n", credit.GetString("code"))

			return nil
		},
	}

	return cmd
}
