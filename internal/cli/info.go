package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/svgapatch/internal/wire"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.svga>",
		Short: "Print a summary of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := wire.NewCodec()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := codec.Decode(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:  %s\n", doc.Version)
			fmt.Fprintf(out, "viewbox:  %gx%g\n", doc.Params.ViewBoxWidth, doc.Params.ViewBoxHeight)
			fmt.Fprintf(out, "timing:   %d frames @ %d fps\n", doc.Params.Frames, doc.Params.FPS)
			fmt.Fprintf(out, "images:   %d\n", len(doc.Images))
			fmt.Fprintf(out, "sprites:  %d\n", len(doc.Sprites))
			fmt.Fprintf(out, "audios:   %d\n", len(doc.Audios))
			for i, s := range doc.Sprites {
				matte := ""
				if s.MatteKey != "" {
					matte = " matte=" + s.MatteKey
				}
				fmt.Fprintf(out, "  [%d] %s (%d frames)%s\n", i, s.ImageKey, len(s.Frames), matte)
			}
			return nil
		},
	}
}
