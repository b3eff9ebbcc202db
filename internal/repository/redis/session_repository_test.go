package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"contract-assistant-be/internal/repository/contract"
	"contract-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFillsDocuments(t *testing.T) {
	s, err := decode([]byte(`{"id":"s1","total_queries":3}`))
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 3, s.TotalQueries)
	assert.NotNil(t, s.Documents)

	_, err = decode([]byte(`{`))
	assert.Error(t, err)
}

// Runs against a real server when REDIS_TEST_URL is set.
func TestSessionRepositoryAgainstRedis(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	repo := NewSessionRepository(rdb, time.Minute)

	id := uuid.NewString()
	s := store.NewSession(id, time.Now().UTC())
	s.Documents["d1"] = &store.Document{ID: "d1", Content: "NDA", TypeLabel: "Non-Disclosure Agreement"}
	s.Order = []string{"d1"}
	s.ActiveDocumentID = "d1"
	require.NoError(t, repo.Save(ctx, s))
	defer repo.Delete(ctx, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "NDA", got.Active().Content)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, contract.ErrSessionNotFound)
}
