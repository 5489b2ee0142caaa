package main

import (
	"os"

	"github.com/simonhull/firebird-suite/kestrel/internal/commands"
	"github.com/simonhull/firebird-suite/kestrel/pkg/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.FitCmd())
	rootCmd.AddCommand(commands.TransformCmd())
	rootCmd.AddCommand(commands.InspectCmd())
	rootCmd.AddCommand(commands.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
