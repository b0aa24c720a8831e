package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	created, err := env.tags.Create(ctx, alice, TagInput{Name: "  urgent ", Description: ptr("do it now")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", created.Name)
	assert.Equal(t, "do it now", created.Description)

	env.tag(t, alice, "backend")
	env.tag(t, alice, "design")
	env.tag(t, bob, "bob-only")

	tags, err := env.tags.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "backend", tags[0].Name)
	assert.Equal(t, "design", tags[1].Name)
	assert.Equal(t, "urgent", tags[2].Name)
	assert.Equal(t, "", tags[0].Description)

	empty, err := env.tags.List(ctx, env.user(t, "carol"))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTagNamesAreUniquePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	env.tag(t, alice, "urgent")

	_, err := env.tags.Create(ctx, alice, TagInput{Name: "urgent"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, "Tag dengan nama yang sama sudah ada", err.Error())

	// Another user may reuse the name.
	_, err = env.tags.Create(ctx, bob, TagInput{Name: "urgent"})
	require.NoError(t, err)
}

func TestTagCreateRequiresName(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	for _, name := range []string{"", "   "} {
		_, err := env.tags.Create(context.Background(), alice, TagInput{Name: name})
		require.Error(t, err)
		assert.True(t, errs.IsInvalidArgument(err))
		assert.Equal(t, "Nama tag wajib diisi", err.Error())
	}

	_, err := env.tags.Create(context.Background(), uuid.Nil, TagInput{Name: "x"})
	assert.True(t, errs.IsUnauthenticated(err))
}

func TestTagGetHidesForeignTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	urgent := env.tag(t, alice, "urgent")

	got, err := env.tags.Get(ctx, alice, urgent.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Name)

	for _, id := range []string{urgent.ID.String(), uuid.NewString(), "???"} {
		_, err = env.tags.Get(ctx, bob, id)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
		assert.Equal(t, "Tag tidak ditemukan atau bukan milik Anda", err.Error())
	}
}

func TestTagUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	urgent := env.tag(t, alice, "urgent")
	env.tag(t, alice, "backend")

	updated, err := env.tags.Update(ctx, alice, urgent.ID.String(), TagPatch{Description: ptr("soon")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", updated.Name)
	assert.Equal(t, "soon", updated.Description)

	updated, err = env.tags.Update(ctx, alice, urgent.ID.String(), TagPatch{Name: ptr(" critical ")})
	require.NoError(t, err)
	assert.Equal(t, "critical", updated.Name)
	assert.Equal(t, "soon", updated.Description)

	_, err = env.tags.Update(ctx, alice, urgent.ID.String(), TagPatch{Name: ptr("backend")})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, "Tag dengan nama yang sama sudah ada", err.Error())

	_, err = env.tags.Update(ctx, alice, urgent.ID.String(), TagPatch{Name: ptr(" ")})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Equal(t, "Nama tag tidak boleh kosong", err.Error())

	_, err = env.tags.Update(ctx, bob, urgent.ID.String(), TagPatch{Name: ptr("mine")})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	got, err := env.tags.Get(ctx, alice, urgent.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "critical", got.Name)
}

func TestTagUpdateRenameIsVisibleOnIdeas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	urgent := env.tag(t, alice, "urgent")
	idea := env.idea(t, alice, "Build cache", urgent.ID.String())

	_, err := env.tags.Update(ctx, alice, urgent.ID.String(), TagPatch{Name: ptr("critical")})
	require.NoError(t, err)

	got, err := env.ideas.GetOwned(ctx, alice, idea.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "critical", *got.Tags[0].Name)
}

func TestTagDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	urgent := env.tag(t, alice, "urgent")

	err := env.tags.Delete(ctx, bob, urgent.ID.String())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, env.tags.Delete(ctx, alice, urgent.ID.String()))

	err = env.tags.Delete(ctx, alice, urgent.ID.String())
	assert.True(t, errs.IsNotFound(err))

	// The name is free again.
	_, err = env.tags.Create(ctx, alice, TagInput{Name: "urgent"})
	require.NoError(t, err)
}
