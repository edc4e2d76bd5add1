package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/svgapatch/internal/config"
	"github.com/ivlev/svgapatch/internal/engine"
	"github.com/ivlev/svgapatch/internal/raster"
	"github.com/ivlev/svgapatch/internal/wire"
)

func newPatchCmd() *cobra.Command {
	var (
		input    string
		output   string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "patch <spec.yaml>",
		Short: "Inject the layers described by a patch spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			spec, err := config.Read(args[0])
			if err != nil {
				return err
			}
			if input != "" {
				spec.Input = input
			}
			if output != "" {
				spec.Output = output
			}
			if cmd.Flags().Changed("compress") {
				spec.Compress = compress
			}
			if err := spec.Validate(); err != nil {
				return err
			}

			codec, err := wire.NewCodec()
			if err != nil {
				return err
			}

			pr := newProgress(logger)
			project := engine.New(spec, codec, &raster.Renderer{}, logger)
			if err := project.Run(cmd.Context()); err != nil {
				return err
			}
			pr.done(fmt.Sprintf("Patched %s with %d layers", spec.Input, len(spec.Layers)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "container to patch (overrides the spec)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "where to write the result (overrides the spec)")
	cmd.Flags().BoolVarP(&compress, "compress", "z", true, "zlib-compress the output (overrides the spec)")
	return cmd
}
