package cmd

import (
	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/spf13/cobra"
)

// registerCompletions adds flag value completion. Shell scripts come from
// cobra's default "completion" command. Must run after flags are defined.
func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("method", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return http.SupportedMethods, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"console\tcolored text", "json\tone JSON document"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml", "json")
	_ = rootCmd.MarkPersistentFlagFilename("history", "db", "sqlite")
	_ = rootCmd.MarkFlagFilename("schema", "json")
}
