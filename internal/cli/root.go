package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion sets the version information shown by --version. Called by
// the main package with values injected via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the svgapatch CLI.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "svgapatch",
		Short:        "svgapatch injects animated layers into SVGA containers",
		Long:         `svgapatch decodes an SVGA 2.0 animation container, injects text, image, PDF or QR layers with optional pulse/float/shine motion, and re-encodes the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("svgapatch %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPatchCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newUnpackCmd())

	return root.ExecuteContext(context.Background())
}
