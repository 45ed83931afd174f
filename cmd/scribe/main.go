// Command scribe runs and inspects Scribe scripts from the terminal.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"

	logger zerolog.Logger
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scribe",
		Short:         "Sandboxed content scripting for game worlds",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetBool("no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			level, err := zerolog.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level %q", viper.GetString("log-level"))
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	for _, name := range []string{"log-level", "no-color"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("SCRIBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(runCmd(), replCmd(), astCmd(), disCmd())
	return root
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if code, _ := cmd.Flags().GetString("code"); code != "" {
		return code, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("a script file or -c <code> is required")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
