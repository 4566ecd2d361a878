package mcqgenerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(id string) *QuestionSet {
	return &QuestionSet{
		ID:        id,
		Requested: 2,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Questions: []Question{
			{
				Prompt:  "The ______ sat on the mat.",
				Options: []string{"cat", "dog", "bird", "fish"},
				Answer:  "cat",
			},
			{
				Prompt:  "The dog ran through the ______.",
				Options: []string{"garden", "person", "thing", "idea"},
				Answer:  "garden",
			},
		},
	}
}

func TestStoreSaveGetRoundtrip(t *testing.T) {
	store, err := OpenStore()
	require.NoError(t, err)
	defer store.Close()

	want := sampleSet("roundtrip1")
	require.NoError(t, store.SaveSet(want))

	got, err := store.GetSet("roundtrip1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Requested, got.Requested)
	assert.Equal(t, want.Questions, got.Questions)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := OpenStore()
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetSet("nope")
	assert.Error(t, err)
}

func TestStoreListSets(t *testing.T) {
	store, err := OpenStore()
	require.NoError(t, err)
	defer store.Close()

	a := sampleSet("lista")
	a.CreatedAt = time.Now().Add(-time.Hour)
	b := sampleSet("listb")
	require.NoError(t, store.SaveSet(a))
	require.NoError(t, store.SaveSet(b))

	infos, err := store.ListSets(0)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Newest first
	assert.Equal(t, "listb", infos[0].ID)
	assert.Equal(t, "lista", infos[1].ID)
	assert.Equal(t, 2, infos[0].Generated)
	assert.Equal(t, 2, infos[0].Requested)
}

func TestStoreListSetsLimit(t *testing.T) {
	store, err := OpenStore()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveSet(sampleSet("limita")))
	require.NoError(t, store.SaveSet(sampleSet("limitb")))

	infos, err := store.ListSets(1)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestOptionsJSONRoundtrip(t *testing.T) {
	options := []string{"cat", "dog", "bird", "fish"}
	encoded, err := OptionsToJSON(options)
	require.NoError(t, err)

	decoded, err := JSONToOptions(encoded)
	require.NoError(t, err)
	assert.Equal(t, options, decoded)
}
