// Package suggest handles AI-assisted keyword suggestions
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/internal/categorizer"
	"fjacquet/ticket-csv/internal/models"
	"fjacquet/ticket-csv/internal/parsererror"

	"github.com/spf13/cobra"
)

var (
	description string
	apply       bool
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask Gemini for a category and keywords for a description",
	Long: `Suggest asks the Gemini model which category an item description belongs
to and which lowercase keywords would match it. The suggestion is printed;
with --apply it is written to the category store. The keyword classifier
itself never calls the model.`,
	Run: suggestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Item description to classify")
	Cmd.Flags().BoolVar(&apply, "apply", false, "Write the suggested keywords to the store")
	_ = Cmd.MarkFlagRequired("description")
}

func suggestFunc(cmd *cobra.Command, args []string) {
	store := root.NewStore()

	classifier := categorizer.NewClassifier(store)
	if current := classifier.Classify(description); current != models.CategoryOther {
		root.Log.Infof("Description already classifies as '%s', nothing to suggest", current)
		return
	}

	cats, err := store.ListCategories()
	if err != nil {
		root.Log.Errorf("Error listing categories: %v", err)
		return
	}
	existing := make([]string, 0, len(cats))
	for _, cat := range cats {
		existing = append(existing, cat.Name)
	}

	ctx := context.Background()
	suggester, err := categorizer.NewKeywordSuggester(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model)
	if err != nil {
		root.Log.Errorf("Error creating suggester: %v", err)
		return
	}
	defer func() {
		if err := suggester.Close(); err != nil {
			root.Log.Warnf("Failed to close Gemini client: %v", err)
		}
	}()

	suggestion, err := suggester.Suggest(ctx, description, existing)
	if err != nil {
		root.Log.Errorf("Error getting suggestion: %v", err)
		return
	}

	fmt.Printf("category: %s\nkeywords: %s\n", suggestion.Category, strings.Join(suggestion.Keywords, ", "))

	if !apply {
		return
	}

	if err := store.CreateCategory(suggestion.Category, suggestion.Keywords); err != nil {
		var exists *parsererror.AlreadyExistsError
		if !errors.As(err, &exists) {
			root.Log.Errorf("Error creating category: %v", err)
			return
		}
		// Category exists, add the keywords individually.
		for _, kw := range suggestion.Keywords {
			if err := store.AddKeyword(suggestion.Category, kw); err != nil {
				if errors.As(err, &exists) {
					continue
				}
				root.Log.Errorf("Error adding keyword '%s': %v", kw, err)
				return
			}
		}
	}

	root.Log.Infof("Applied suggestion to category '%s'", suggestion.Category)
}
