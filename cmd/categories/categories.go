// Package categories handles management of the category store
package categories

import (
	"fmt"
	"strings"

	"fjacquet/ticket-csv/cmd/root"

	"github.com/spf13/cobra"
)

var keywords []string

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the category→keywords dictionary",
	Long: `Categories manages the persisted keyword dictionary used for
classification. Names and keywords are normalized to lowercase; the order in
which categories are created is the order the classifier matches them in.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories and their keywords",
	Run:   listFunc,
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new category",
	Args:  cobra.ExactArgs(1),
	Run:   createFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category and its keywords",
	Args:  cobra.ExactArgs(1),
	Run:   deleteFunc,
}

var addKeywordCmd = &cobra.Command{
	Use:   "add-keyword <name> <keyword>",
	Short: "Add a keyword to an existing category",
	Args:  cobra.ExactArgs(2),
	Run:   addKeywordFunc,
}

var removeKeywordCmd = &cobra.Command{
	Use:   "remove-keyword <name> <keyword>",
	Short: "Remove a keyword from a category",
	Args:  cobra.ExactArgs(2),
	Run:   removeKeywordFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the category store as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   exportFunc,
}

func init() {
	createCmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "Initial keyword (repeatable)")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(addKeywordCmd)
	Cmd.AddCommand(removeKeywordCmd)
	Cmd.AddCommand(exportCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	cats, err := root.NewStore().ListCategories()
	if err != nil {
		root.Log.Errorf("Error listing categories: %v", err)
		return
	}

	if len(cats) == 0 {
		fmt.Println("No categories defined")
		return
	}
	for _, cat := range cats {
		fmt.Printf("%s: %s\n", cat.Name, strings.Join(cat.Keywords, ", "))
	}
}

func createFunc(cmd *cobra.Command, args []string) {
	if err := root.NewStore().CreateCategory(args[0], keywords); err != nil {
		root.Log.Errorf("Error creating category: %v", err)
		return
	}
	root.Log.Infof("Category '%s' created", strings.ToLower(args[0]))
}

func deleteFunc(cmd *cobra.Command, args []string) {
	if err := root.NewStore().DeleteCategory(args[0]); err != nil {
		root.Log.Errorf("Error deleting category: %v", err)
		return
	}
	root.Log.Infof("Category '%s' deleted", strings.ToLower(args[0]))
}

func addKeywordFunc(cmd *cobra.Command, args []string) {
	if err := root.NewStore().AddKeyword(args[0], args[1]); err != nil {
		root.Log.Errorf("Error adding keyword: %v", err)
		return
	}
	root.Log.Infof("Keyword '%s' added to category '%s'", strings.ToLower(args[1]), strings.ToLower(args[0]))
}

func removeKeywordFunc(cmd *cobra.Command, args []string) {
	if err := root.NewStore().RemoveKeyword(args[0], args[1]); err != nil {
		root.Log.Errorf("Error removing keyword: %v", err)
		return
	}
	root.Log.Infof("Keyword '%s' removed from category '%s'", strings.ToLower(args[1]), strings.ToLower(args[0]))
}

func exportFunc(cmd *cobra.Command, args []string) {
	if err := root.NewStore().ExportYAML(args[0]); err != nil {
		root.Log.Errorf("Error exporting categories: %v", err)
		return
	}
	root.Log.Infof("Categories exported to %s", args[0])
}
