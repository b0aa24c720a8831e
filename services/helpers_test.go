package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/database"
	"github.com/rpupo63/ideku-backend/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db    database.Database
	ideas *IdeaService
	tags  *TagService
	auth  *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := database.Open(map[string]string{
		"DB_TYPE":     database.TypeSQLite,
		"SQLITE_PATH": "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gdb))
	t.Cleanup(func() { _ = database.Close(gdb) })

	db := database.New(gdb)
	auth, err := NewAuthService(db.UserRepo(), AuthConfig{
		Secret:     "test-secret",
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	return &testEnv{
		db:    db,
		ideas: NewIdeaService(db.IdeaRepo(), db.TagRepo()),
		tags:  NewTagService(db.TagRepo()),
		auth:  auth,
	}
}

// user stores a user row directly so assignees can be resolved to usernames.
func (e *testEnv) user(t *testing.T, username string) uuid.UUID {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, e.db.UserRepo().Add(context.Background(), u))
	return u.ID
}

func (e *testEnv) tag(t *testing.T, owner uuid.UUID, name string) *TagView {
	t.Helper()
	tag, err := e.tags.Create(context.Background(), owner, TagInput{Name: name})
	require.NoError(t, err)
	return tag
}

func (e *testEnv) idea(t *testing.T, owner uuid.UUID, name string, tagIDs ...string) *IdeaView {
	t.Helper()
	idea, err := e.ideas.Create(context.Background(), owner, IdeaInput{Name: name, TagIDs: tagIDs})
	require.NoError(t, err)
	return idea
}

func ptr[T any](v T) *T {
	return &v
}
