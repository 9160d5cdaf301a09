package main

import (
	"encoding/json"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"biography-site/biography/compose"
	"biography-site/biography/locale"
	"biography-site/biography/resolve"
)

//nolint:gochecknoglobals // Cobra boilerplate
var dumpLang string

//nolint:gochecknoglobals // Cobra boilerplate
var dumpView string

//nolint:gochecknoglobals // Cobra boilerplate
var dumpRaw bool

//nolint:gochecknoglobals // Cobra boilerplate
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the resolved view model for a locale",
	Long: `Resolve the biography for one locale and print it as JSON. With --view the
composed page for that view is printed instead, including status badges,
expiry labels and gallery image references.

Use --raw for a Go value dump of the same data.

Example:
  biographyctl dump --lang en
  biographyctl dump --lang zh --view resume`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&dumpLang, "lang", string(locale.Default), "locale: zh or en")
	dumpCmd.Flags().StringVar(&dumpView, "view", "", "compose a view: interactive, portfolio or resume")
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "print a Go value dump instead of JSON")
}

func runDump(cmd *cobra.Command, args []string) (err error) {
	l, err := locale.Parse(dumpLang)
	if err != nil {
		err = errors.Wrapf(err, "invalid --lang %q", dumpLang)
		return err
	}
	rec, err := loadRecord()
	if err != nil {
		return err
	}

	vm := resolve.Resolve(rec, l)
	var value any = vm
	if dumpView != "" {
		var page compose.Page
		page, err = compose.New(compose.DefaultMediaPrefix).Compose(compose.View(dumpView), vm)
		if err != nil {
			err = errors.Wrap(err, "failed to compose view")
			return err
		}
		value = page
	}

	out := cmd.OutOrStdout()
	if dumpRaw {
		spew.Fdump(out, value)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	err = enc.Encode(value)
	if err != nil {
		err = errors.Wrap(err, "failed to encode output")
		return err
	}
	return nil
}
