package cli

import (
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/svgapatch/internal/svga"
	"github.com/ivlev/svgapatch/internal/wire"
)

// unpackManifest is the inspection summary written next to the assets.
type unpackManifest struct {
	Version string        `yaml:"version"`
	Params  svga.Params   `yaml:"params"`
	Sprites []spriteEntry `yaml:"sprites"`
	Audios  []svga.Audio  `yaml:"audios,omitempty"`
}

type spriteEntry struct {
	ImageKey string `yaml:"imageKey"`
	MatteKey string `yaml:"matteKey,omitempty"`
	Frames   int    `yaml:"frames"`
}

func newUnpackCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "unpack <file.svga>",
		Short: "Dump a container's manifest and image assets to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

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

			if err := os.MkdirAll(filepath.Join(outDir, "images"), 0755); err != nil {
				return err
			}

			manifest := unpackManifest{
				Version: doc.Version,
				Params:  doc.Params,
				Audios:  doc.Audios,
			}
			for _, s := range doc.Sprites {
				manifest.Sprites = append(manifest.Sprites, spriteEntry{
					ImageKey: s.ImageKey,
					MatteKey: s.MatteKey,
					Frames:   len(s.Frames),
				})
			}
			out, err := yaml.Marshal(&manifest)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(outDir, "manifest.yaml"), out, 0644); err != nil {
				return err
			}

			for key, b64 := range doc.Images {
				raw, err := base64.StdEncoding.DecodeString(b64)
				if err != nil {
					logger.Warn("skipping undecodable asset", "key", key, "err", err)
					continue
				}
				path := filepath.Join(outDir, "images", key+".png")
				if err := os.WriteFile(path, raw, 0644); err != nil {
					return err
				}
			}

			logger.Info("unpacked container",
				"path", args[0], "dir", outDir,
				"images", len(doc.Images), "sprites", len(doc.Sprites))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "unpacked", "output directory")
	return cmd
}
