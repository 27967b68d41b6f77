package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catalyst-cloud/distil-go/cmd/distil/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "distil",
	Short: "Distil billing and usage CLI",
	Long: `A command-line interface for the Distil rating service.

Query rated products, raw usage measurements, invoices, month-to-date
quotations and credits for an OpenStack-style cloud project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.distil/config.yml)")
	rootCmd.PersistentFlags().String("os-auth-url", "", "identity service URL")
	rootCmd.PersistentFlags().String("os-username", "", "identity username")
	rootCmd.PersistentFlags().String("os-password", "", "identity password")
	rootCmd.PersistentFlags().String("os-project-name", "", "project name to scope to")
	rootCmd.PersistentFlags().String("os-region-name", "", "catalog region")
	rootCmd.PersistentFlags().StringP("token", "t", "", "authentication token (requires --distil-url)")
	rootCmd.PersistentFlags().String("distil-url", "", "Distil service URL, bypassing catalog lookup")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "log HTTP requests and responses")
	rootCmd.PersistentFlags().Bool("insecure", false, "skip TLS certificate validation")

	_ = viper.BindPFlag("os_auth_url", rootCmd.PersistentFlags().Lookup("os-auth-url"))
	_ = viper.BindPFlag("os_username", rootCmd.PersistentFlags().Lookup("os-username"))
	_ = viper.BindPFlag("os_password", rootCmd.PersistentFlags().Lookup("os-password"))
	_ = viper.BindPFlag("os_project_name", rootCmd.PersistentFlags().Lookup("os-project-name"))
	_ = viper.BindPFlag("os_region_name", rootCmd.PersistentFlags().Lookup("os-region-name"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("distil_url", rootCmd.PersistentFlags().Lookup("distil-url"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("insecure", rootCmd.PersistentFlags().Lookup("insecure"))

	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewProductsCommand())
	rootCmd.AddCommand(commands.NewMeasurementsCommand())
	rootCmd.AddCommand(commands.NewInvoicesCommand())
	rootCmd.AddCommand(commands.NewQuotationsCommand())
	rootCmd.AddCommand(commands.NewCreditsCommand())
	rootCmd.AddCommand(commands.NewHealthCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".distil")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("DISTIL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
