// Package cmd holds the finlear command line.
package cmd

import (
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finlear",
		Short:         "Financial literacy and loan planning API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newEMICmd(),
		newSaverCmd(),
		newAffordCmd(),
	)
	return root
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string, json bool) log.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	opts := []log.Option{log.LevelOption(lvl)}
	if json {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...)
}
