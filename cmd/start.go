package cmd

import (
	"github.com/pders01/git-pair/internal/config"
	"github.com/pders01/git-pair/internal/git"
	"github.com/pders01/git-pair/internal/pairing"
	"github.com/pders01/git-pair/internal/picker"
	"github.com/pders01/git-pair/internal/repo"
	"github.com/spf13/cobra"
)

var startRepos []string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive pairing session",
	Long: `Start an interactive pairing session.

The current directory, every --repo directory and the configured
repositories are offered as repositories. Buddies are kept until the
session ends or "stop" is run.

Examples:
  pair start
  pair start --repo ../api --repo ../web`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	for _, c := range []*cobra.Command{rootCmd, startCmd} {
		c.Flags().StringSliceVar(&startRepos, "repo", nil, "Additional repository directory (repeatable)")
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := git.Available(); err != nil {
		return err
	}

	errOut := commandErr(cmd)
	notify := termNotifier{out: errOut}
	session := newSession(sessionDirs(), picker.Terminal{Out: errOut, Height: config.GetPickerHeight()}, notify)

	return newShell(session, notify, commandIn(cmd), commandOut(cmd)).run(ctx)
}

// sessionDirs lists the directories offered as repositories, starting with
// the working directory
func sessionDirs() []string {
	dirs := []string{"."}
	dirs = append(dirs, startRepos...)
	return append(dirs, config.GetRepositories()...)
}

func newSession(dirs []string, p pairing.Picker, notify pairing.Notifier) *pairing.Session {
	return pairing.NewSession(pairing.Deps{
		Source:   repo.DirSource{Dirs: dirs, MessageFile: config.GetMessageFile()},
		History:  git.Lister{MaxCount: config.GetHistoryMaxCount()},
		Picker:   p,
		Notifier: notify,
		Marker:   config.GetPickerMarker(),
	})
}
