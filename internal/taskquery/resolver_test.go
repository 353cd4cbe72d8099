package taskquery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	mu       sync.Mutex
	calls    []string
	users    map[string]string
	tags     map[string]string
	teams    map[string]string
	projects map[string]string
	teamErr  error
}

func (f *fakeLookup) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func collect(index map[string]string, names []string) []string {
	var out []string
	for _, n := range names {
		if id, ok := index[n]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (f *fakeLookup) UserIDsByNames(_ context.Context, names []string) ([]string, error) {
	f.record("users")
	return collect(f.users, names), nil
}

func (f *fakeLookup) TagIDsByNames(_ context.Context, names []string) ([]string, error) {
	f.record("tags")
	return collect(f.tags, names), nil
}

func (f *fakeLookup) TeamIDByName(_ context.Context, name string) (string, bool, error) {
	f.record("team")
	if f.teamErr != nil {
		return "", false, f.teamErr
	}
	id, ok := f.teams[name]
	return id, ok, nil
}

func (f *fakeLookup) ProjectIDByName(_ context.Context, name string) (string, bool, error) {
	f.record("project")
	id, ok := f.projects[name]
	return id, ok, nil
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		users:    map[string]string{"Rani Kawale": "u1", "Amit Shah": "u2"},
		tags:     map[string]string{"Urgent": "tag1"},
		teams:    map[string]string{"Design": "team1"},
		projects: map[string]string{"Workviyo": "p1"},
	}
}

func TestResolver_ResolvesAllFacets(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup)

	res, err := r.Resolve(context.Background(), ParseRequest("RaniKawale,Ghost", "Urgent", "Design", "Workviyo", ""))
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, res.OwnerIDs)
	assert.Equal(t, []string{"tag1"}, res.TagIDs)
	assert.Equal(t, "team1", res.TeamID)
	assert.True(t, res.TeamFound)
	assert.Equal(t, "p1", res.ProjectID)
	assert.True(t, res.ProjectFound)
	assert.ElementsMatch(t, []string{"users", "tags", "team", "project"}, lookup.calls)
}

func TestResolver_SkipsAbsentFacets(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup)

	res, err := r.Resolve(context.Background(), Request{Team: "Unknown"})
	require.NoError(t, err)

	assert.False(t, res.TeamFound)
	assert.Equal(t, []string{"team"}, lookup.calls)
}

func TestResolver_PropagatesLookupError(t *testing.T) {
	lookup := newFakeLookup()
	lookup.teamErr = errors.New("connection reset")
	r := NewResolver(lookup)

	res, err := r.Resolve(context.Background(), ParseRequest("RaniKawale", "", "Design", "", ""))

	assert.ErrorIs(t, err, lookup.teamErr)
	assert.Equal(t, Resolved{}, res)
}
