package models

// CategoryConfig represents a single category and its matching keywords.
// Order matters: the classifier walks categories in the order they appear
// in the persisted document, so the JSON form is an array, not an object.
type CategoryConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// CategoriesDoc is the persisted category store document.
// It has a single top-level key holding the ordered category list.
type CategoriesDoc struct {
	Categories []CategoryConfig `json:"categories" yaml:"categories"`
}
