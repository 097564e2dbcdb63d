package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/git-pair/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"pkt.systems/pslog"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pair",
	Short: "Add Co-authored-by trailers for the people you pair with",
	Long: `pair keeps a list of pairing buddies for the current session and writes
them as Co-authored-by trailers into the pending commit message of a
repository.

Buddies are picked from the authors found in the repository history.
Running pair without a subcommand starts an interactive session.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runStart,
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pair/config.toml)")
}

func initConfig() {
	log := pslog.Ctx(commandContext(rootCmd))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			log.Warn("config directory unavailable", "err", err)
		} else {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PAIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("failed to read config file", "err", err)
		}
		return
	}
	log.Debug("using config file", "path", viper.ConfigFileUsed())
}

// commandContext returns the context cobra handed to cmd; tests call the
// run functions with a nil command.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func commandIn(cmd *cobra.Command) io.Reader {
	if cmd != nil {
		return cmd.InOrStdin()
	}
	return os.Stdin
}

func commandOut(cmd *cobra.Command) io.Writer {
	if cmd != nil {
		return cmd.OutOrStdout()
	}
	return os.Stdout
}

func commandErr(cmd *cobra.Command) io.Writer {
	if cmd != nil {
		return cmd.ErrOrStderr()
	}
	return os.Stderr
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
