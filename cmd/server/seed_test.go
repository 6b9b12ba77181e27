package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/storage/memory"
)

func TestSeedGroups(t *testing.T) {
	t.Run("Creates groups", func(t *testing.T) {
		groups := memory.NewGroupMemoryStorage()
		require.NoError(t, seedGroups(groups, "cats:Коты, dogs:Собаки"))

		all, err := groups.GetAllGroups()
		require.NoError(t, err)
		assert.Len(t, all, 2)

		g, err := groups.GetGroupBySlug("dogs")
		require.NoError(t, err)
		assert.Equal(t, "Собаки", g.Title)
	})

	t.Run("Empty list", func(t *testing.T) {
		groups := memory.NewGroupMemoryStorage()
		require.NoError(t, seedGroups(groups, ""))

		all, err := groups.GetAllGroups()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Existing group is skipped", func(t *testing.T) {
		groups := memory.NewGroupMemoryStorage()
		require.NoError(t, seedGroups(groups, "cats:Коты"))
		assert.NoError(t, seedGroups(groups, "cats:Коты"))
	})

	t.Run("Malformed item", func(t *testing.T) {
		groups := memory.NewGroupMemoryStorage()
		assert.Error(t, seedGroups(groups, "cats"))
	})
}
