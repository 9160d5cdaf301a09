package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"biography-site/biography/loader"
	"biography-site/biography/model"
	"biography-site/internal/shared/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var dataPath string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "biographyctl",
	Short: "Inspect the biography document and manage site state",
	Long: `biographyctl checks a biography document against the data contract,
prints what each locale and view will show, uploads images to the media store
and reports on unlock sessions.

Settings are read from the same environment (and .env files) as the server.`,
	SilenceUsage: true,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "biography document (default BIOGRAPHY_DATA, then the embedded sample)")
}

func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load()
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}
	return cfg, nil
}

func loadRecord() (rec *model.BiographyRecord, err error) {
	path := dataPath
	if path == "" {
		var cfg config.Config
		cfg, err = loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.BiographyData
	}
	rec, err = loader.Load(path)
	if err != nil {
		err = errors.Wrap(err, "failed to load biography")
		return nil, err
	}
	return rec, nil
}
