package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-editor/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored document as HTML or Word",
	Long: `Export writes the stored document to <title>.html (markup unchanged) or
<title>.docx (bold title followed by the plain text).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("dir")

		kv, docs, err := openDocuments()
		if err != nil {
			return err
		}
		defer kv.Close()

		doc, err := docs.Load(cmd.Context())
		if err != nil {
			return err
		}
		path, err := export.Write(doc, format, dir)
		if err != nil {
			logger.Error("export failed", "format", format, "error", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", export.FormatHTML, "export format: html or docx")
	exportCmd.Flags().String("dir", ".", "output directory")

	rootCmd.AddCommand(exportCmd)
}
