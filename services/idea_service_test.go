package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestIdeaCreateThenGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	urgent := env.tag(t, alice, "urgent")
	backend := env.tag(t, alice, "backend")

	created, err := env.ideas.Create(ctx, alice, IdeaInput{
		Name:        "  Build cache  ",
		Description: ptr("LRU in front of the API"),
		Status:      ptr("in-progress"),
		TagIDs:      []string{backend.ID.String(), urgent.ID.String()},
	})
	require.NoError(t, err)

	got, err := env.ideas.GetOwned(ctx, alice, created.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Build cache", got.IdeaName)
	assert.Equal(t, "LRU in front of the API", got.Description)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, models.StatusInProgress.Info(), got.StatusInfo)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, backend.ID, got.Tags[0].ID)
	assert.Equal(t, "backend", *got.Tags[0].Name)
	assert.Equal(t, urgent.ID, got.Tags[1].ID)
	assert.Equal(t, "urgent", *got.Tags[1].Name)
	assert.Nil(t, got.AssignedTo)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestIdeaCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	idea := env.idea(t, alice, "Write docs")

	assert.Equal(t, models.StatusIdea, idea.Status)
	assert.Equal(t, "", idea.Description)
	assert.NotNil(t, idea.Tags)
	assert.Empty(t, idea.Tags)
	assert.Nil(t, idea.AssignedTo)
	assert.False(t, idea.CreatedAt.IsZero())
}

func TestIdeaCreateDeduplicatesTags(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	urgent := env.tag(t, alice, "urgent")

	idea := env.idea(t, alice, "Build cache", urgent.ID.String(), urgent.ID.String())
	require.Len(t, idea.Tags, 1)
	assert.Equal(t, urgent.ID, idea.Tags[0].ID)
}

func TestIdeaCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	bobsTag := env.tag(t, bob, "bob-only")

	tests := []struct {
		name    string
		in      IdeaInput
		wantMsg string
	}{
		{"empty name", IdeaInput{Name: ""}, "Nama ide wajib diisi"},
		{"blank name", IdeaInput{Name: "   \t"}, "Nama ide wajib diisi"},
		{"name too long", IdeaInput{Name: strings.Repeat("a", 101)}, "Nama ide maksimal 100 karakter"},
		{"description too long", IdeaInput{Name: "ok", Description: ptr(strings.Repeat("d", 1001))}, "Deskripsi maksimal 1000 karakter"},
		{"bogus status", IdeaInput{Name: "ok", Status: ptr("bogus")}, "Status tidak valid"},
		{"foreign tag", IdeaInput{Name: "ok", TagIDs: []string{bobsTag.ID.String()}}, "Salah satu tag tidak ditemukan atau bukan milik Anda"},
		{"unknown tag", IdeaInput{Name: "ok", TagIDs: []string{uuid.NewString()}}, "Salah satu tag tidak ditemukan atau bukan milik Anda"},
		{"malformed tag id", IdeaInput{Name: "ok", TagIDs: []string{"not-an-id"}}, "Salah satu tag tidak ditemukan atau bukan milik Anda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ideas.Create(ctx, alice, tt.in)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidArgument(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	ideas, err := env.ideas.ListOwned(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, ideas, "failed creates must not persist anything")
}

func TestIdeaNameLengthCountsCharacters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")

	_, err := env.ideas.Create(ctx, alice, IdeaInput{Name: strings.Repeat("a", 100)})
	require.NoError(t, err)

	_, err = env.ideas.Create(ctx, alice, IdeaInput{Name: strings.Repeat("é", 100)})
	require.NoError(t, err)

	_, err = env.ideas.Create(ctx, alice, IdeaInput{Name: "ok", Description: ptr(strings.Repeat("💡", 1000))})
	require.NoError(t, err)
}

func TestIdeaRequiresAuthenticatedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ideas.ListOwned(ctx, uuid.Nil)
	assert.True(t, errs.IsUnauthenticated(err))
	assert.Equal(t, "User tidak terautentikasi", err.Error())

	_, err = env.ideas.Create(ctx, uuid.Nil, IdeaInput{Name: "x"})
	assert.True(t, errs.IsUnauthenticated(err))

	_, err = env.ideas.Take(ctx, uuid.Nil, uuid.NewString())
	assert.True(t, errs.IsUnauthenticated(err))
}

func TestIdeaGetOwnedHidesForeignIdeas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	for _, id := range []string{idea.ID.String(), uuid.NewString(), "garbage"} {
		_, err := env.ideas.GetOwned(ctx, bob, id)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
		assert.Equal(t, "Idea tidak ditemukan atau bukan milik Anda", err.Error())
	}
}

func TestIdeaUpdateTouchesOnlySuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	urgent := env.tag(t, alice, "urgent")

	created, err := env.ideas.Create(ctx, alice, IdeaInput{
		Name:        "Build cache",
		Description: ptr("first draft"),
		TagIDs:      []string{urgent.ID.String()},
	})
	require.NoError(t, err)

	updated, err := env.ideas.Update(ctx, alice, created.ID.String(), IdeaPatch{
		Description: ptr("second draft"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Build cache", updated.IdeaName)
	assert.Equal(t, "second draft", updated.Description)
	assert.Equal(t, models.StatusIdea, updated.Status)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, urgent.ID, updated.Tags[0].ID)

	updated, err = env.ideas.Update(ctx, alice, created.ID.String(), IdeaPatch{
		Name:   ptr("  Build a cache  "),
		TagIDs: ptr([]string{}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Build a cache", updated.IdeaName)
	assert.Equal(t, "second draft", updated.Description)
	assert.Empty(t, updated.Tags)
}

func TestIdeaUpdateEmptyPatchReturnsCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	got, err := env.ideas.Update(ctx, alice, idea.ID.String(), IdeaPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Build cache", got.IdeaName)

	_, err = env.ideas.Update(ctx, bob, idea.ID.String(), IdeaPatch{})
	assert.True(t, errs.IsNotFound(err))
}

func TestIdeaUpdateValidationDoesNotMutate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	idea := env.idea(t, alice, "Build cache")

	tests := []struct {
		name    string
		patch   IdeaPatch
		wantMsg string
	}{
		{"bogus status", IdeaPatch{Status: ptr("bogus"), Name: ptr("renamed")}, "Status tidak valid"},
		{"empty status", IdeaPatch{Status: ptr("")}, "Status tidak valid"},
		{"empty name", IdeaPatch{Name: ptr("  ")}, "Nama ide tidak boleh kosong"},
		{"long name", IdeaPatch{Name: ptr(strings.Repeat("n", 101))}, "Nama ide maksimal 100 karakter"},
		{"long description", IdeaPatch{Name: ptr("renamed"), Description: ptr(strings.Repeat("d", 1001))}, "Deskripsi maksimal 1000 karakter"},
		{"unknown tag", IdeaPatch{Name: ptr("renamed"), TagIDs: ptr([]string{uuid.NewString()})}, "Salah satu tag tidak ditemukan atau bukan milik Anda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ideas.Update(ctx, alice, idea.ID.String(), tt.patch)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidArgument(err))
			assert.Equal(t, tt.wantMsg, err.Error())

			got, err := env.ideas.GetOwned(ctx, alice, idea.ID.String())
			require.NoError(t, err)
			assert.Equal(t, "Build cache", got.IdeaName)
			assert.Equal(t, models.StatusIdea, got.Status)
		})
	}
}

func TestIdeaUpdateForeignIdeaIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	_, err := env.ideas.Update(ctx, bob, idea.ID.String(), IdeaPatch{Name: ptr("stolen")})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Idea tidak ditemukan atau bukan milik Anda", err.Error())
}

// Documented looseness: a direct status update does not reconcile the assignee.
func TestIdeaUpdateStatusLeavesAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	_, err := env.ideas.Take(ctx, bob, idea.ID.String())
	require.NoError(t, err)

	done, err := env.ideas.Update(ctx, alice, idea.ID.String(), IdeaPatch{Status: ptr("done")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	require.NotNil(t, done.AssignedTo)
	assert.Equal(t, bob, done.AssignedTo.ID)

	other := env.idea(t, alice, "Unclaimed")
	inProgress, err := env.ideas.Update(ctx, alice, other.ID.String(), IdeaPatch{Status: ptr("in-progress")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, inProgress.Status)
	assert.Nil(t, inProgress.AssignedTo)
}

func TestIdeaDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	err := env.ideas.Delete(ctx, bob, idea.ID.String())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Idea tidak ditemukan atau bukan milik Anda", err.Error())

	err = env.ideas.Delete(ctx, alice, uuid.NewString())
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, env.ideas.Delete(ctx, alice, idea.ID.String()))

	_, err = env.ideas.GetOwned(ctx, alice, idea.ID.String())
	assert.True(t, errs.IsNotFound(err))

	err = env.ideas.Delete(ctx, alice, idea.ID.String())
	assert.True(t, errs.IsNotFound(err))
}

func TestIdeaTakeAssignsCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	taken, err := env.ideas.Take(ctx, bob, idea.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, taken.Status)
	require.NotNil(t, taken.AssignedTo)
	assert.Equal(t, bob, taken.AssignedTo.ID)
	assert.Equal(t, "bob", taken.AssignedTo.Username)

	// The owner sees the claim too.
	got, err := env.ideas.GetOwned(ctx, alice, idea.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, bob, got.AssignedTo.ID)
}

func TestIdeaTakeIsIdempotentForHolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	idea := env.idea(t, alice, "Build cache")

	first, err := env.ideas.Take(ctx, bob, idea.ID.String())
	require.NoError(t, err)
	second, err := env.ideas.Take(ctx, bob, idea.ID.String())
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.AssignedTo.ID, second.AssignedTo.ID)
}

func TestIdeaTakeConflictAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	idea := env.idea(t, alice, "Build cache")

	_, err := env.ideas.Take(ctx, bob, idea.ID.String())
	require.NoError(t, err)

	_, err = env.ideas.Take(ctx, carol, idea.ID.String())
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, "Idea sudah diambil oleh orang lain", err.Error())

	// Even the owner cannot take over a claim.
	_, err = env.ideas.Take(ctx, alice, idea.ID.String())
	assert.True(t, errs.IsConflict(err))

	for _, id := range []string{uuid.NewString(), "nope"} {
		_, err = env.ideas.Take(ctx, bob, id)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
		assert.Equal(t, "Idea tidak ditemukan", err.Error())
	}
}

func TestIdeaTakeConcurrentClaimantsHaveOneWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	idea := env.idea(t, alice, "Build cache")

	const claimants = 8
	users := make([]uuid.UUID, claimants)
	for i := range users {
		users[i] = env.user(t, "user"+string(rune('a'+i)))
	}

	results := make([]error, claimants)
	var g errgroup.Group
	for i := range claimants {
		g.Go(func() error {
			_, err := env.ideas.Take(ctx, users[i], idea.ID.String())
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var winner uuid.UUID
	wins := 0
	for i, err := range results {
		if err == nil {
			wins++
			winner = users[i]
			continue
		}
		assert.True(t, errs.IsConflict(err), "unexpected error: %v", err)
	}
	require.Equal(t, 1, wins)

	got, err := env.ideas.GetOwned(ctx, alice, idea.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, winner, got.AssignedTo.ID)
}

func TestIdeaReleaseAndCompletePermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	mallory := env.user(t, "mallory")
	idea := env.idea(t, alice, "Build cache")
	id := idea.ID.String()

	_, err := env.ideas.Take(ctx, bob, id)
	require.NoError(t, err)

	_, err = env.ideas.Release(ctx, mallory, id)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
	assert.Equal(t, "Tidak diizinkan melepaskan idea ini", err.Error())

	_, err = env.ideas.Complete(ctx, mallory, id)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
	assert.Equal(t, "Tidak diizinkan menyelesaikan idea ini", err.Error())

	// The assignee releases.
	released, err := env.ideas.Release(ctx, bob, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIdea, released.Status)
	assert.Nil(t, released.AssignedTo)

	// Once released, bob is neither owner nor assignee.
	_, err = env.ideas.Complete(ctx, bob, id)
	assert.True(t, errs.IsForbidden(err))

	_, err = env.ideas.Take(ctx, mallory, id)
	require.NoError(t, err)

	// The owner completes somebody else's claim.
	done, err := env.ideas.Complete(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	assert.Nil(t, done.AssignedTo)

	_, err = env.ideas.Release(ctx, alice, uuid.NewString())
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Idea tidak ditemukan", err.Error())
}

func TestIdeaOwnerCanReleaseUnclaimedIdea(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	idea := env.idea(t, alice, "Build cache")

	_, err := env.ideas.Update(ctx, alice, idea.ID.String(), IdeaPatch{Status: ptr("done")})
	require.NoError(t, err)

	released, err := env.ideas.Release(ctx, alice, idea.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusIdea, released.Status)
}

func TestIdeaListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	first := env.idea(t, alice, "first")
	env.idea(t, alice, "second")
	third := env.idea(t, alice, "third")
	env.idea(t, bob, "bob's")

	owned, err := env.ideas.ListOwned(ctx, alice)
	require.NoError(t, err)
	require.Len(t, owned, 3)
	assert.Equal(t, []string{"third", "second", "first"}, names(owned))

	_, err = env.ideas.Complete(ctx, alice, third.ID.String())
	require.NoError(t, err)
	_, err = env.ideas.Complete(ctx, alice, first.ID.String())
	require.NoError(t, err)

	completed, err := env.ideas.ListCompletedOwned(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, names(completed))

	public, err := env.ideas.ListCompletedForUser(ctx, alice.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, names(public))

	none, err := env.ideas.ListCompletedForUser(ctx, bob.String())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestIdeaListCompletedForUserValidatesTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ideas.ListCompletedForUser(ctx, "")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Equal(t, "User id diperlukan", err.Error())

	_, err = env.ideas.ListCompletedForUser(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
}

// Documented looseness: deleting a tag leaves the reference on the idea, rendered without a name.
func TestIdeaKeepsDanglingTagReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	urgent := env.tag(t, alice, "urgent")
	idea := env.idea(t, alice, "Build cache", urgent.ID.String())

	require.NoError(t, env.tags.Delete(ctx, alice, urgent.ID.String()))

	got, err := env.ideas.GetOwned(ctx, alice, idea.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, urgent.ID, got.Tags[0].ID)
	assert.Nil(t, got.Tags[0].Name)

	// The stale id can no longer be attached.
	_, err = env.ideas.Update(ctx, alice, idea.ID.String(), IdeaPatch{TagIDs: ptr([]string{urgent.ID.String()})})
	assert.True(t, errs.IsInvalidArgument(err))
}

func names(views []IdeaView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.IdeaName)
	}
	return out
}
