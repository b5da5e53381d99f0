package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"links54_client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingCacheKey(t *testing.T) {
	assert.Equal(t, "sim_meetings_u1_u2", MeetingCacheKey("u1", "u2"))
	assert.Equal(t, "sim_meetings_anon_u2", MeetingCacheKey("", "u2"))
}

func TestSaveLoadAppend(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	key := MeetingCacheKey("u1", "u2")

	got, err := local.LoadMeetings(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	m1 := model.Meeting{ID: "m1", Title: "Kickoff", ScheduledAt: time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), Duration: 30}
	require.NoError(t, local.SaveMeetings(key, []model.Meeting{m1}))

	require.NoError(t, local.AppendMeeting(key, model.Meeting{ID: "m2", Title: "Follow-up", Duration: 15}))

	got, err = local.LoadMeetings(key)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Kickoff", got[0].Title)
	assert.Equal(t, "m2", got[1].ID)
}

func TestKeySanitized(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, local.SaveMeetings("../../etc/passwd", []model.Meeting{{ID: "x"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), string(filepath.Separator))
}

func TestCorruptCacheTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocal(dir)
	require.NoError(t, err)

	key := MeetingCacheKey("u1", "u2")
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), []byte("{{{"), 0644))

	got, err := local.LoadMeetings(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}
