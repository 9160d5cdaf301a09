package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a biography document against the data contract",
	Long: `Decode the biography document, reject unknown fields and verify that both
locales are present with matching section lengths and valid project statuses.

Example:
  biographyctl validate --data ./biography.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	rec, err := loadRecord()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ok: %s / %s\n", rec.Personal.ZH.Name, rec.Personal.EN.Name)
	fmt.Fprintf(out, "  experience:     %d\n", len(rec.Experience.EN))
	fmt.Fprintf(out, "  education:      %d\n", len(rec.Education.EN))
	fmt.Fprintf(out, "  skill groups:   %d\n", len(rec.Skills.EN))
	fmt.Fprintf(out, "  certifications: %d\n", len(rec.Certifications.EN))
	fmt.Fprintf(out, "  projects:       %d\n", len(rec.Projects.EN))
	return nil
}
