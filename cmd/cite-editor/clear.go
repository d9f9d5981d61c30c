package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the stored document",
	Long:  `Clear empties the stored document and restores the default title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, docs, err := openDocuments()
		if err != nil {
			return err
		}
		defer kv.Close()

		doc, err := docs.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared. Title: %s\n", doc.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
