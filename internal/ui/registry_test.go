package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentportal/internal/view"
)

func TestRegistryPutGet(t *testing.T) {
	r := NewRegistry(time.Minute)
	v := view.NewListView(new(MockStudentAPI))

	token := r.Put(v)
	require.NotEmpty(t, token)

	got, ok := r.Get(token)
	assert.True(t, ok)
	assert.Same(t, v, got)

	_, ok = r.Get("")
	assert.False(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistrySweepDisposesIdleViews(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10 * time.Minute)
	r.now = func() time.Time { return now }

	idle := view.NewListView(new(MockStudentAPI))
	busy := view.NewListView(new(MockStudentAPI))
	idleToken := r.Put(idle)
	busyToken := r.Put(busy)

	now = now.Add(8 * time.Minute)
	_, ok := r.Get(busyToken)
	require.True(t, ok)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	assert.False(t, idle.Alive())
	assert.True(t, busy.Alive())
	_, ok = r.Get(idleToken)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemoveAndStop(t *testing.T) {
	r := NewRegistry(time.Minute)
	a := view.NewListView(new(MockStudentAPI))
	b := view.NewListView(new(MockStudentAPI))
	r.Remove(r.Put(a))
	r.Put(b)

	assert.False(t, a.Alive())
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Start("@every 1h"))
	r.Stop()

	assert.False(t, b.Alive())
	assert.Zero(t, r.Len())
}

func TestRegistryStartRejectsBadSpec(t *testing.T) {
	r := NewRegistry(time.Minute)
	assert.Error(t, r.Start("whenever"))
}

func TestRegistryTakeOnlyReturnsPendingViewsOnce(t *testing.T) {
	r := NewRegistry(time.Minute)
	v := view.NewListView(new(MockStudentAPI))
	token := r.Put(v)

	_, ok := r.Take(token)
	assert.False(t, ok)

	r.MarkPending(token)
	got, ok := r.Take(token)
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = r.Take(token)
	assert.False(t, ok)

	r.MarkPending("missing")
	_, ok = r.Take("missing")
	assert.False(t, ok)
}

func TestRegistryEvictsLeastRecentlyUsedWhenFull(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }
	r.limit = 2

	oldest := view.NewListView(new(MockStudentAPI))
	recent := view.NewListView(new(MockStudentAPI))
	oldestToken := r.Put(oldest)
	now = now.Add(time.Second)
	recentToken := r.Put(recent)
	now = now.Add(time.Second)

	newest := view.NewListView(new(MockStudentAPI))
	newestToken := r.Put(newest)

	assert.Equal(t, 2, r.Len())
	assert.False(t, oldest.Alive())
	_, ok := r.Get(oldestToken)
	assert.False(t, ok)
	_, ok = r.Get(recentToken)
	assert.True(t, ok)
	_, ok = r.Get(newestToken)
	assert.True(t, ok)
}
