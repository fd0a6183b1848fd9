package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragrancesListOrdersByName(t *testing.T) {
	t.Parallel()

	repo := NewFragrances(seededStore(t))
	fragrances, err := repo.List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, f := range fragrances {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Bergamotte", "Lavendel", "Rose", "Sandelholz", "Vanille"}, names)
}

func TestFragrancesSearchMatchesNameAndDescription(t *testing.T) {
	t.Parallel()

	repo := NewFragrances(seededStore(t))
	ctx := context.Background()

	byName, err := repo.Search(ctx, "lav")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Lavendel", byName[0].Name)

	byDescription, err := repo.Search(ctx, "warm")
	require.NoError(t, err)
	require.Len(t, byDescription, 2)
	assert.Equal(t, "Sandelholz", byDescription[0].Name)
	assert.Equal(t, "Vanille", byDescription[1].Name)
}

func TestFragrancesFindByCode(t *testing.T) {
	t.Parallel()

	repo := NewFragrances(seededStore(t))
	ctx := context.Background()

	rose, err := repo.FindByCode(ctx, 301)
	require.NoError(t, err)
	assert.Equal(t, "Rose", rose.Name)

	_, err = repo.FindByCode(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFragrancesCreateUpdateDelete(t *testing.T) {
	t.Parallel()

	repo := NewFragrances(seededStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, FragranceFields{Name: "Zeder", Code: 202, Description: "Holzig, trocken"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := repo.Update(ctx, created.ID, FragranceFields{Name: "Atlaszeder", Code: 203})
	require.NoError(t, err)
	assert.Equal(t, "Atlaszeder", updated.Name)
	assert.Equal(t, 203, updated.Code)
	assert.Empty(t, updated.Description)

	_, err = repo.Update(ctx, 9999, FragranceFields{Name: "Ghost", Code: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFragrancesDeleteReferencedFails(t *testing.T) {
	t.Parallel()

	database := seededStore(t)
	repo := NewFragrances(database)
	rose := fragranceByName(t, database, "Rose")

	_, err := repo.Delete(context.Background(), rose.ID)
	assert.Error(t, err)
}
