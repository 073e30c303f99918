package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/neo/packages/core/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter neo configuration",
	Long: `Initialize neo in the current directory.

This creates:
  - .neo.yaml   - Defaults for method, port, route, timeout and headers
  - .env        - Variables for {{name}} placeholders

Examples:
  neo init
  neo init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	envFile := filepath.Join(cwd, ".env")

	if !forceInit {
		for _, f := range []string{configFile, envFile} {
			if _, err := os.Stat(f); err == nil {
				return reportError(cmd, exitWith(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f)))
			}
		}
	}

	configContent := map[string]any{
		"method":  "GET",
		"port":    8080,
		"route":   "/",
		"timeout": "30s",
		"envFile": ".env",
		"headers": map[string]string{
			"Accept":        "application/json",
			"Authorization": "Bearer {{token}}",
		},
		"variables": map[string]string{
			"apiVersion": "v1",
		},
	}

	configYAML, err := yaml.Marshal(configContent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	envContent := `# Variables for {{name}} placeholders in route, body and headers
token=change-me
userId=1
`
	if err := os.WriteFile(envFile, []byte(envContent), 0644); err != nil {
		return fmt.Errorf("failed to create env file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", envFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nneo initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Try: neo -u localhost -r /{{apiVersion}}/users/{{userId}}\n")

	return nil
}
