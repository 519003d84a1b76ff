// Package categorizer assigns spending categories to product
// descriptions using keyword matching against the category store.
package categorizer

import (
	"strings"

	"fjacquet/ticket-csv/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStoreInterface is the read side of the category store needed
// for classification. It allows dependency injection and easier testing.
type CategoryStoreInterface interface {
	ListCategories() ([]models.CategoryConfig, error)
}

// Classifier matches product descriptions against category keywords.
// It holds a snapshot of the store taken at construction time; the store
// is treated as read-only while a document is being scanned. Call Reload
// after mutating the store to refresh the snapshot.
type Classifier struct {
	store      CategoryStoreInterface
	categories []models.CategoryConfig
}

// NewClassifier creates a Classifier and loads the current categories.
func NewClassifier(store CategoryStoreInterface) *Classifier {
	c := &Classifier{store: store}
	c.loadCategories()
	return c
}

// Classify returns the category of the first keyword found as a
// substring of the lowercased description, walking categories in their
// persisted insertion order. When nothing matches it returns
// models.CategoryOther. Classify never mutates the store.
func (c *Classifier) Classify(description string) string {
	normalized := strings.ToLower(description)

	for _, category := range c.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(normalized, keyword) {
				log.WithFields(logrus.Fields{
					"description": description,
					"keyword":     keyword,
					"category":    category.Name,
				}).Debug("Description classified by keyword")
				return category.Name
			}
		}
	}

	return models.CategoryOther
}

// Reload refreshes the category snapshot from the store. Useful when the
// underlying document has been updated since construction.
func (c *Classifier) Reload() {
	c.loadCategories()
}

func (c *Classifier) loadCategories() {
	categories, err := c.store.ListCategories()
	if err != nil {
		log.WithError(err).Warn("Failed to load categories, classifier falls back to Other")
		c.categories = nil
		return
	}
	c.categories = categories
	log.WithField("count", len(categories)).Debug("Loaded categories for classifier")
}
