package cmd

import (
	"fmt"

	"github.com/pders01/git-pair/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Write the default configuration to $HOME/.config/pair/config.toml, or to
the file given with --config. An existing file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := commandOut(cmd)

	path, err := configPath()
	if err != nil {
		return err
	}

	created, err := config.WriteDefault(path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(out, "Config already exists: %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "✓ Created default config: %s\n", path)
	fmt.Fprintln(out, "  Run pair in a repository to start a session")
	return nil
}
