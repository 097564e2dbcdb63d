package cmd

import (
	"fmt"

	"github.com/pders01/git-pair/internal/config"
	"github.com/pders01/git-pair/internal/git"
	"github.com/pders01/git-pair/internal/models"
	"github.com/spf13/cobra"
)

var (
	authorsJSON bool
	authorsToon bool
)

var authorsCmd = &cobra.Command{
	Use:   "authors [dir]",
	Short: "List the commit authors that can be picked as buddies",
	Long: `List the distinct commit authors of a repository, most recent first.

These are the candidates offered by "add" in an interactive session.

Examples:
  pair authors                 # Authors of the current repository
  pair authors ../other --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthors,
}

func init() {
	rootCmd.AddCommand(authorsCmd)

	authorsCmd.Flags().BoolVar(&authorsJSON, "json", false, "Output as JSON")
	authorsCmd.Flags().BoolVar(&authorsToon, "toon", false, "Output in LLM-friendly toon format")
}

func runAuthors(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := commandOut(cmd)

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if !git.IsGitRepo(ctx, dir) {
		return fmt.Errorf("not a git repository: %s", dir)
	}

	root, err := git.TopLevel(ctx, dir)
	if err != nil {
		return err
	}

	raw, err := git.Lister{MaxCount: config.GetHistoryMaxCount()}.Authors(ctx, root)
	if err != nil {
		return err
	}

	authors := make([]models.Identity, 0, len(raw))
	for _, id := range raw {
		authors = append(authors, models.ParseIdentity(id))
	}

	if done, err := writeStructured(out, authors, authorsJSON, authorsToon); done {
		return err
	}

	if len(authors) == 0 {
		fmt.Fprintf(out, "No authors found in %s\n", root)
		return nil
	}
	fmt.Fprintf(out, "Found %d author(s) in %s:\n\n", len(authors), root)
	for _, a := range authors {
		fmt.Fprintf(out, "  %s\n", a.Raw)
	}
	return nil
}
