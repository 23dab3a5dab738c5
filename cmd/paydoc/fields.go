package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the system fields available to template components",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		fmt.Printf("%-28s %-28s %s\n", "ID", "LABEL", "SAMPLE")
		for _, id := range app.registry.FieldIDs() {
			field, _ := app.registry.Resolve(id)
			fmt.Printf("%-28s %-28s %s\n", id, field.Label, field.Sample)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
