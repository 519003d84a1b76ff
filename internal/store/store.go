// Package store provides the persisted category dictionary used for
// classification. The store is a single JSON document with one top-level
// key holding an ordered list of categories; the file is the single
// source of truth and is re-read on every operation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/ticket-csv/internal/models"
	"fjacquet/ticket-csv/internal/parsererror"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStore manages the category→keywords document. Every mutation
// performs a full read-modify-write of the document under mu, so callers
// within one process cannot lose each other's updates. Concurrent writers
// from separate processes remain last-writer-wins.
type CategoryStore struct {
	Path string

	mu sync.Mutex
}

// NewCategoryStore creates a store backed by the JSON document at path.
// The file is created implicitly on the first mutation if absent.
func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{Path: path}
}

// ListCategories returns all categories in their persisted insertion
// order. A missing store file is not an error; it yields an empty slice.
func (s *CategoryStore) ListCategories() ([]models.CategoryConfig, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// CreateCategory adds a new category with an optional initial keyword
// list. Name and keywords are normalized to lowercase before storing.
func (s *CategoryStore) CreateCategory(name string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if s.findCategory(doc, name) >= 0 {
		return &parsererror.AlreadyExistsError{Kind: "category", Name: name}
	}

	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || containsString(normalized, kw) {
			continue
		}
		normalized = append(normalized, kw)
	}

	doc.Categories = append(doc.Categories, models.CategoryConfig{
		Name:     name,
		Keywords: normalized,
	})

	log.WithFields(logrus.Fields{
		"category": name,
		"keywords": len(normalized),
	}).Info("Creating category")
	return s.save(doc)
}

// DeleteCategory removes a category and all its keywords.
func (s *CategoryStore) DeleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	idx := s.findCategory(doc, name)
	if idx < 0 {
		return &parsererror.NotFoundError{Kind: "category", Name: name}
	}

	doc.Categories = append(doc.Categories[:idx], doc.Categories[idx+1:]...)

	log.WithField("category", name).Info("Deleting category")
	return s.save(doc)
}

// AddKeyword appends a keyword to an existing category.
func (s *CategoryStore) AddKeyword(name, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	// An empty keyword is a substring of everything and would swallow
	// all classifications.
	if keyword == "" {
		return fmt.Errorf("keyword must not be empty")
	}

	idx := s.findCategory(doc, name)
	if idx < 0 {
		return &parsererror.NotFoundError{Kind: "category", Name: name}
	}
	if containsString(doc.Categories[idx].Keywords, keyword) {
		return &parsererror.AlreadyExistsError{Kind: "keyword", Name: keyword}
	}

	doc.Categories[idx].Keywords = append(doc.Categories[idx].Keywords, keyword)

	log.WithFields(logrus.Fields{
		"category": name,
		"keyword":  keyword,
	}).Info("Adding keyword")
	return s.save(doc)
}

// RemoveKeyword deletes a keyword from an existing category.
func (s *CategoryStore) RemoveKeyword(name, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	name = strings.ToLower(strings.TrimSpace(name))
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	idx := s.findCategory(doc, name)
	if idx < 0 {
		return &parsererror.NotFoundError{Kind: "category", Name: name}
	}

	keywords := doc.Categories[idx].Keywords
	pos := -1
	for i, kw := range keywords {
		if kw == keyword {
			pos = i
			break
		}
	}
	if pos < 0 {
		return &parsererror.NotFoundError{Kind: "keyword", Name: keyword}
	}

	doc.Categories[idx].Keywords = append(keywords[:pos], keywords[pos+1:]...)

	log.WithFields(logrus.Fields{
		"category": name,
		"keyword":  keyword,
	}).Info("Removing keyword")
	return s.save(doc)
}

// ExportYAML writes the current store contents in the human-editable
// categories.yaml shape.
func (s *CategoryStore) ExportYAML(path string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling categories to YAML: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing YAML export: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(doc.Categories),
	}).Info("Exported categories to YAML")
	return nil
}

// load reads the whole document from disk. Missing file yields an empty
// document; a corrupt file is an error.
func (s *CategoryStore) load() (models.CategoriesDoc, error) {
	var doc models.CategoriesDoc

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", s.Path).Debug("Category store not found, starting empty")
			return doc, nil
		}
		return doc, fmt.Errorf("error reading category store: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("error parsing category store: %w", err)
	}
	return doc, nil
}

// save rewrites the whole document. There is no partial-write recovery:
// an interrupted write may leave the previous or a truncated document.
func (s *CategoryStore) save(doc models.CategoriesDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling category store: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	if err := os.WriteFile(s.Path, data, models.PermissionStoreFile); err != nil {
		return fmt.Errorf("error writing category store: %w", err)
	}
	return nil
}

func (s *CategoryStore) findCategory(doc models.CategoriesDoc, name string) int {
	for i, cat := range doc.Categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
