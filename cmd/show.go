package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AndrewEC/ImageViewer/imaging"
	"github.com/AndrewEC/ImageViewer/utils"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show details about an image file",
	Long:  "Decodes the image and prints its dimensions, format and size on disk.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file := args[0]
		if err := utils.ValidateImageFile(file); err != nil {
			logrus.Fatal(err)
		}

		info, err := os.Stat(file)
		if err != nil {
			logrus.Fatalf("failed to stat file: %v", err)
		}

		frame, err := imaging.DecodeFull(file)
		if err != nil {
			logrus.Fatalf("failed to decode image: %v", err)
		}
		defer func() {
			if err := frame.Release(); err != nil {
				logrus.Warnf("failed to release frame: %v", err)
			}
		}()

		bounds := frame.Bounds()

		if showJSON {
			out := struct {
				File      string `json:"file"`
				Format    string `json:"format"`
				Width     int    `json:"width"`
				Height    int    `json:"height"`
				SizeBytes int64  `json:"sizeBytes"`
			}{
				File:      filepath.Base(file),
				Format:    frame.Format(),
				Width:     bounds.Dx(),
				Height:    bounds.Dy(),
				SizeBytes: info.Size(),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				logrus.Fatal(err)
			}
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "File:\t%s\n", filepath.Base(file))
		fmt.Fprintf(tw, "Format:\t%s\n", frame.Format())
		fmt.Fprintf(tw, "Dimensions:\t%dx%d\n", bounds.Dx(), bounds.Dy())
		fmt.Fprintf(tw, "Size:\t%d bytes\n", info.Size())
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}
