package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/schedulo-api/pkg/errors"
)

type cacheRepoStub struct {
	values  map[string][]byte
	getErr  error
	deleted []string
}

func (s *cacheRepoStub) Get(_ context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheRepoStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(_ context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	return nil
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := &cacheRepoStub{values: map[string][]byte{"k": []byte(`1`)}}
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	var out int
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Invalidate(context.Background(), "timetables:*"))
	assert.Empty(t, repo.deleted)
}

func TestCachedLoadsOnceThenHits(t *testing.T) {
	repo := &cacheRepoStub{values: map[string][]byte{}}
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)

	loads := 0
	load := func() ([]string, error) {
		loads++
		return []string{"c1", "c2"}, nil
	}

	first, err := cached(context.Background(), svc, "timetables:all", 0, load)
	require.NoError(t, err)
	second, err := cached(context.Background(), svc, "timetables:all", 0, load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
}

func TestCachedFallsBackOnCacheError(t *testing.T) {
	repo := &cacheRepoStub{values: map[string][]byte{}, getErr: errors.New("redis down")}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	value, err := cached(context.Background(), svc, "k", 0, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	repo := &cacheRepoStub{values: map[string][]byte{}}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	_, err := cached(context.Background(), svc, "k", 0, func() (int, error) { return 0, errors.New("boom") })
	require.Error(t, err)
	assert.Empty(t, repo.values)
}
