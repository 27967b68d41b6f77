package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
	"github.com/catalyst-cloud/distil-go/pkg/distilclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		authURL     string
		username    string
		password    string
		projectName string
		regionName  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save credentials",
		Long:  "Authenticate against the identity service, verify Distil access and save the settings to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if authURL == "" {
				authURL = viper.GetString("os_auth_url")
			}

			if authURL == "" {
				fmt.Print("Auth URL: ")
				authURL, _ = reader.ReadString('\n')
				authURL = strings.TrimSpace(authURL)
			}

			if username == "" {
				username = viper.GetString("os_username")
			}

			if username == "" {
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				raw, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				password = string(raw)
			}

			if projectName == "" {
				projectName = viper.GetString("os_project_name")
			}

			if regionName == "" {
				regionName = viper.GetString("os_region_name")
			}

			client, err := distilclient.New(cmd.Context(), &distil.Config{
				AuthURL:     authURL,
				Username:    username,
				Password:    password,
				ProjectName: projectName,
				RegionName:  regionName,
				Insecure:    viper.GetBool("insecure"),
			})
			if err != nil {
				return fmt.Errorf("authenticating: %w", err)
			}

			if _, err := client.Health().Get(cmd.Context()); err != nil {
				return fmt.Errorf("verifying Distil access: %w", err)
			}

			err = saveConfig(map[string]string{
				"os_auth_url":     authURL,
				"os_username":     username,
				"os_project_name": projectName,
				"os_region_name":  regionName,
				"distil_url":      client.Endpoint(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s, Distil endpoint %s\n", username, client.Endpoint())

			return nil
		},
	}

	cmd.Flags().StringVar(&authURL, "os-auth-url", "", "identity service URL")
	cmd.Flags().StringVar(&username, "os-username", "", "identity username")
	cmd.Flags().StringVar(&password, "os-password", "", "identity password (prompted when omitted)")
	cmd.Flags().StringVar(&projectName, "os-project-name", "", "project name to scope to")
	cmd.Flags().StringVar(&regionName, "os-region-name", "", "catalog region")

	return cmd
}

// saveConfig writes settings to ~/.distil/config.yml, dropping empty values.
// The password is deliberately never persisted.
func saveConfig(settings map[string]string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".distil")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	trimmed := make(map[string]string, len(settings))

	for name, value := range settings {
		if value != "" {
			trimmed[name] = value
		}
	}

	encoded, err := yaml.Marshal(trimmed)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(configPath, encoded, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
