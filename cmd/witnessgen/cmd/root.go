package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "witnessgen",
	Short: "Witness-generation engine driver",
	Long:  `witnessgen runs the fixed-point witness-generation engine against a JSON circuit fixture.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
