package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "treefnio/internal/core/context"
	"treefnio/internal/core/entity"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"name":    "Old name",
		"price":   100,
		"comment": "kept",
		"removed": "gone",
	}
	newState := map[string]any{
		"name":    "New name",
		"price":   100,
		"comment": "kept",
		"added":   true,
	}

	changes := Diff(oldState, newState)

	require.Len(t, changes, 3)

	name := changes["name"].(map[string]any)
	assert.Equal(t, "Old name", name["old"])
	assert.Equal(t, "New name", name["new"])

	added := changes["added"].(map[string]any)
	assert.Nil(t, added["old"])
	assert.Equal(t, true, added["new"])

	removed := changes["removed"].(map[string]any)
	assert.Equal(t, "gone", removed["old"])
	assert.Nil(t, removed["new"])

	assert.NotContains(t, changes, "price")
	assert.NotContains(t, changes, "comment")
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"name": "same"}
	assert.Empty(t, Diff(state, state))
}

func TestEnrichCreatedBy(t *testing.T) {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-1"})

	doc := entity.NewDocument()
	require.NoError(t, EnrichCreatedBy(ctx, &doc))
	assert.Equal(t, "user-1", doc.CreatedBy)
	assert.Equal(t, "user-1", doc.UpdatedBy)

	ctx = appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-2"})
	require.NoError(t, EnrichUpdatedBy(ctx, &doc))
	assert.Equal(t, "user-1", doc.CreatedBy)
	assert.Equal(t, "user-2", doc.UpdatedBy)
}

func TestEnrichCreatedBy_NoUserInContext(t *testing.T) {
	doc := entity.NewDocument()
	require.NoError(t, EnrichCreatedBy(context.Background(), &doc))
	assert.Empty(t, doc.CreatedBy)
}
