package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscare/models"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "faqs.json")
}

func TestNewStoreMissingFile(t *testing.T) {
	store, err := NewStore(tempStorePath(t))
	require.NoError(t, err)
	assert.Empty(t, store.All())
}

func TestNewStoreMalformedFile(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path)
	assert.Error(t, err)
}

func TestAddPersistsAcrossReload(t *testing.T) {
	path := tempStorePath(t)
	store, err := NewStore(path)
	require.NoError(t, err)

	entry := models.FAQ{Question: "Where is the gym?", Answer: "Building B.", Category: "Facilities"}
	require.NoError(t, store.Add(entry))

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.Len(t, reloaded.All(), 1)
	assert.Equal(t, entry, reloaded.All()[0])
}

func TestUpdateAndRemoveByIndex(t *testing.T) {
	store, err := NewStore(tempStorePath(t))
	require.NoError(t, err)
	require.NoError(t, store.Add(models.FAQ{Question: "q1", Answer: "a1"}))
	require.NoError(t, store.Add(models.FAQ{Question: "q2", Answer: "a2"}))

	require.NoError(t, store.UpdateAt(1, models.FAQ{Question: "q2", Answer: "edited"}))
	assert.Equal(t, "edited", store.All()[1].Answer)

	assert.ErrorIs(t, store.UpdateAt(5, models.FAQ{}), ErrNotFound)
	assert.ErrorIs(t, store.RemoveAt(-1), ErrNotFound)

	require.NoError(t, store.RemoveAt(0))
	require.Len(t, store.All(), 1)
	assert.Equal(t, "q2", store.All()[0].Question)
}

func TestReplaceAllAndQuestionsOrder(t *testing.T) {
	store, err := NewStore(tempStorePath(t))
	require.NoError(t, err)

	faqs := []models.FAQ{
		{Question: "first", Answer: "1"},
		{Question: "second", Answer: "2"},
		{Question: "third", Answer: "3"},
	}
	require.NoError(t, store.ReplaceAll(faqs))

	assert.Equal(t, []string{"first", "second", "third"}, store.Questions())

	// The returned slice is a copy; mutating it must not affect the store.
	all := store.All()
	all[0].Question = "mutated"
	assert.Equal(t, "first", store.All()[0].Question)
}
