package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gary-picks",
	Short: "A CLI for managing the Gary Picks Engine services",
	Long:  `Gary Picks Engine generates, settles, and tracks AI-driven sports betting picks...`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
