package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"biography-site/internal/bootstrap"
	"biography-site/internal/shared/util"
)

//nolint:gochecknoglobals // Cobra boilerplate
var mediaKey string

//nolint:gochecknoglobals // Cobra boilerplate
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage images in the media store",
}

//nolint:gochecknoglobals // Cobra boilerplate
var mediaPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Upload an image to the configured media store",
	Long: `Upload a local image to the store selected by MEDIA_STORE (local or s3).
The key defaults to the file name; reference it from the biography document
as a relative picture path.

Example:
  biographyctl media put ./shots/calendar-1.png --key projects/calendar-1.png`,
	Args: cobra.ExactArgs(1),
	RunE: runMediaPut,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaPutCmd)
	mediaPutCmd.Flags().StringVar(&mediaKey, "key", "", "object key (default: sanitized file name)")
}

func runMediaPut(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := bootstrap.NewMediaStore(ctx, cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to open media store")
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to open image")
		return err
	}
	defer f.Close()

	key := mediaKey
	if key == "" {
		key, err = util.SanitizeFileName(filepath.Base(args[0]))
		if err != nil {
			err = errors.Wrap(err, "failed to derive key from file name")
			return err
		}
	}
	info, err := store.Put(ctx, key, f)
	if err != nil {
		err = errors.Wrapf(err, "failed to store %s", key)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%s, %d bytes)\n", key, info.ContentType, info.Size)
	return nil
}
