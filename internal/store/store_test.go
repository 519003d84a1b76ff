package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ticket-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fjacquet/ticket-csv/internal/models"
)

func newTestStore(t *testing.T) *CategoryStore {
	t.Helper()
	return NewCategoryStore(filepath.Join(t.TempDir(), "categories.json"))
}

func TestListCategories_MissingFile(t *testing.T) {
	s := newTestStore(t)

	cats, err := s.ListCategories()
	assert.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCreateCategory_NormalizesToLowercase(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateCategory("Lácteos", []string{"Leche", "YOGUR"})
	require.NoError(t, err)

	cats, err := s.ListCategories()
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "lácteos", cats[0].Name)
	assert.Equal(t, []string{"leche", "yogur"}, cats[0].Keywords)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("bebidas", nil))

	err := s.CreateCategory("Bebidas", nil)
	require.Error(t, err)
	var exists *parsererror.AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
	assert.Equal(t, "category", exists.Kind)
}

func TestCreateCategory_DropsDuplicateKeywords(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("bebidas", []string{"agua", "Agua", "zumo"}))

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"agua", "zumo"}, cats[0].Keywords)
}

func TestDeleteCategory(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("bebidas", nil))
	require.NoError(t, s.DeleteCategory("bebidas"))

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)

	err = s.DeleteCategory("bebidas")
	var notFound *parsererror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "category", notFound.Kind)
}

func TestAddKeyword(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("lácteos", []string{"leche"}))
	require.NoError(t, s.AddKeyword("lácteos", "Queso"))

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"leche", "queso"}, cats[0].Keywords)

	// Duplicate keyword
	err = s.AddKeyword("lácteos", "queso")
	var exists *parsererror.AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
	assert.Equal(t, "keyword", exists.Kind)

	// Missing category
	err = s.AddKeyword("bebidas", "agua")
	var notFound *parsererror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "category", notFound.Kind)
}

func TestAddKeyword_RejectsEmpty(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("bebidas", []string{"agua"}))

	// An empty keyword would match every description via Contains.
	assert.Error(t, s.AddKeyword("bebidas", ""))
	assert.Error(t, s.AddKeyword("bebidas", "   "))

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"agua"}, cats[0].Keywords)
}

func TestAddThenRemoveKeyword_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("lácteos", []string{"leche", "yogur"}))

	require.NoError(t, s.AddKeyword("lácteos", "queso"))
	require.NoError(t, s.RemoveKeyword("lácteos", "queso"))

	cats, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"leche", "yogur"}, cats[0].Keywords)
}

func TestRemoveKeyword_NotFound(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCategory("lácteos", []string{"leche"}))

	err := s.RemoveKeyword("lácteos", "queso")
	var notFound *parsererror.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "keyword", notFound.Kind)

	err = s.RemoveKeyword("bebidas", "agua")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "category", notFound.Kind)
}

func TestListCategories_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	names := []string{"verduras", "bollería", "lácteos", "bebidas"}
	for _, name := range names {
		require.NoError(t, s.CreateCategory(name, nil))
	}

	cats, err := s.ListCategories()
	require.NoError(t, err)
	require.Len(t, cats, len(names))
	for i, name := range names {
		assert.Equal(t, name, cats[i].Name)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewCategoryStore(path)
	_, err := s.ListCategories()
	assert.Error(t, err)
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()
	s := NewCategoryStore(filepath.Join(dir, "categories.json"))
	require.NoError(t, s.CreateCategory("lácteos", []string{"leche"}))

	exportPath := filepath.Join(dir, "categories.yaml")
	require.NoError(t, s.ExportYAML(exportPath))

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	var doc models.CategoriesDoc
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "lácteos", doc.Categories[0].Name)
	assert.Equal(t, []string{"leche"}, doc.Categories[0].Keywords)
}
