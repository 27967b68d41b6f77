// Package commands implements the distil CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
	"github.com/catalyst-cloud/distil-go/pkg/distilclient"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

const defaultJSONIndent = "  "

// newClient builds a Distil client from the resolved CLI configuration.
func newClient(ctx context.Context) (distil.Client, error) {
	config := &distil.Config{
		AuthURL:     viper.GetString("os_auth_url"),
		Username:    viper.GetString("os_username"),
		Password:    viper.GetString("os_password"),
		ProjectName: viper.GetString("os_project_name"),
		RegionName:  viper.GetString("os_region_name"),
		AuthToken:   viper.GetString("token"),
		DistilURL:   viper.GetString("distil_url"),
		Insecure:    viper.GetBool("insecure"),
		Debug:       viper.GetBool("debug"),
	}

	if config.Debug {
		config.Logger = stderrLogger{}
	}

	client, err := distilclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating Distil client: %w", err)
	}

	return client, nil
}

// stderrLogger prints structured log lines to stderr for --debug runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s", level, msg)

	for name, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", name, value)
	}

	fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// renderStructured prints v as JSON or YAML per the output flag, returning
// false when the format asks for a table so the caller renders one.
func renderStructured(v any) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", defaultJSONIndent)

		return true, encoder.Encode(v)

	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer func() {
			_ = encoder.Close()
		}()

		return true, encoder.Encode(v)

	default:
		return false, nil
	}
}

// resourceMaps flattens resources to field maps for structured output.
func resourceMaps(resources []distil.Resource) []map[string]any {
	maps := make([]map[string]any, 0, len(resources))
	for _, resource := range resources {
		maps = append(maps, resource.Fields())
	}

	return maps
}
