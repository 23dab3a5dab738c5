package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"paydoc-studio/internal/manager"
	"paydoc-studio/internal/model"
	"paydoc-studio/internal/preview"
)

var (
	createName   string
	createPreset string
	authorName   string
	activeFlag   bool
)

// parseKind validates the document-kind positional argument shared by the
// template subcommands.
func parseKind(arg string) (model.DocumentKind, error) {
	kind := model.DocumentKind(arg)
	if !model.IsAllowedDocumentKind(kind) {
		return "", fmt.Errorf("unknown document kind %q (expected one of: %s)", arg, kindList())
	}
	return kind, nil
}

func kindList() string {
	kinds := model.Kinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List the templates stored for a document kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		templates, err := app.manager.Templates(kind)
		if err != nil {
			return err
		}

		fmt.Printf("%-38s %-30s %-10s %s\n", "ID", "NAME", "STATUS", "UPDATED")
		for _, tpl := range templates {
			updated := tpl.LastModified.Format("2006-01-02 15:04")
			name := tpl.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%-38s %-30s %-10s %s\n", tpl.ID, name, tpl.Status, updated)
		}
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <kind>",
	Short: "Create a new draft template and save it",
	Long: `Create a new draft template for the given document kind, optionally
applying a named structure preset, and save it as a draft.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}

		tpl, err := app.manager.NewDraft(kind, authorName)
		if err != nil {
			return err
		}
		if createName != "" {
			tpl.Name = createName
		}
		if createPreset != "" {
			tpl, err = app.manager.ApplyPreset(tpl, createPreset, false)
			if err != nil {
				return err
			}
		}

		saved, err := app.manager.Save(tpl, model.StatusDraft, authorName)
		if err != nil {
			return err
		}
		fmt.Printf("Created draft %s (%s)\n", saved.ID, saved.Name)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <kind> <template-id>",
	Short: "Show a template's sections and components",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		tpl, err := app.manager.Get(kind, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Template: %s\n", tpl.Name)
		fmt.Printf("Kind:     %s\n", tpl.Kind)
		fmt.Printf("Status:   %s\n", tpl.Status)
		if tpl.Kind.Config().HasActiveFlag {
			fmt.Printf("Active:   %v\n", tpl.IsActive)
		}
		for _, sec := range tpl.Sections {
			fmt.Printf("\n[%s]\n", sec.Role)
			for i, c := range sec.Items {
				mark := " "
				if !c.Included {
					mark = "x"
				}
				label := c.DisplayName
				if label == "" {
					label = c.Source.FieldID
				}
				fmt.Printf("  %2d. [%s] %-30s %s\n", i, mark, label, c.Amount)
			}
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <kind> <template-id>",
	Short: "Render a template against the sample field catalog",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		tpl, err := app.manager.Get(kind, args[1])
		if err != nil {
			return err
		}

		table := app.projector.Render(tpl, preview.SampleData{})
		printTable(table)
		return nil
	},
}

// printTable writes a rendered preview in a plain fixed-width layout.
func printTable(table preview.Table) {
	fmt.Printf("== %s ==\n", table.Header.Title)
	for _, f := range table.Header.Fields {
		fmt.Printf("%s: %s\n", f.Label, f.Value)
	}
	fmt.Println()
	fmt.Println(strings.Join(table.Columns, " | "))

	if len(table.Groups) > 0 {
		for _, g := range table.Groups {
			fmt.Printf("-- %s --\n", g.Title)
			for _, row := range g.Rows {
				fmt.Println(strings.Join(row, " | "))
			}
		}
	}
	for _, row := range table.Rows {
		fmt.Println(strings.Join(row, " | "))
	}
	if len(table.Totals) > 0 {
		fmt.Println()
		for _, tl := range table.Totals {
			fmt.Printf("%s: %s\n", tl.Label, tl.Value)
		}
	}
}

var publishCmd = &cobra.Command{
	Use:   "publish <kind> <template-id>",
	Short: "Validate a template and move it to published",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		tpl, err := app.manager.Get(kind, args[1])
		if err != nil {
			return err
		}

		saved, err := app.manager.Save(tpl, model.StatusPublished, authorName)
		if err != nil {
			return err
		}
		fmt.Printf("Published %s (%s)\n", saved.ID, saved.Name)
		return nil
	},
}

var setActiveCmd = &cobra.Command{
	Use:   "set-active <kind> <template-id>",
	Short: "Toggle a bank layout's active flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		app, err := newCLIApp()
		if err != nil {
			return err
		}
		updated, err := app.manager.SetActive(kind, args[1], activeFlag, authorName)
		if err != nil {
			return err
		}
		fmt.Printf("Template %s active=%v\n", updated.ID, updated.IsActive)
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets <kind>",
	Short: "List the structure presets available for a document kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		for _, name := range manager.PresetNames(kind) {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Template name")
	createCmd.Flags().StringVar(&createPreset, "preset", "", "Structure preset to apply")

	setActiveCmd.Flags().BoolVar(&activeFlag, "active", true, "Desired active state")

	for _, c := range []*cobra.Command{createCmd, publishCmd, setActiveCmd} {
		c.Flags().StringVar(&authorName, "by", "cli", "Author recorded in the audit fields")
	}

	rootCmd.AddCommand(listCmd, createCmd, showCmd, previewCmd, publishCmd, setActiveCmd, presetsCmd)
}
