package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetfewer/meetfewer/internal/meetings"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestPopulateCounts(t *testing.T) {
	store := meetings.NewStore(fixedNow)
	b := NewBuilder(42, fixedNow)

	n, err := b.Populate(store, DefaultMeetingCount)
	require.NoError(t, err)
	assert.Equal(t, DefaultMeetingCount, n)
	assert.Equal(t, DefaultMeetingCount, store.Len())
	assert.Equal(t, len(Users()), store.PreferenceCount())
}

func TestPopulateDeterministic(t *testing.T) {
	s1 := meetings.NewStore(fixedNow)
	s2 := meetings.NewStore(fixedNow)

	_, err := NewBuilder(7, fixedNow).Populate(s1, 20)
	require.NoError(t, err)
	_, err = NewBuilder(7, fixedNow).Populate(s2, 20)
	require.NoError(t, err)

	m1 := s1.Meetings()
	m2 := s2.Meetings()
	require.Len(t, m2, len(m1))

	byTitle := func(ms []meetings.Meeting) map[string]meetings.Meeting {
		out := make(map[string]meetings.Meeting, len(ms))
		for _, m := range ms {
			out[m.Title] = m
		}
		return out
	}
	t1, t2 := byTitle(m1), byTitle(m2)
	for title, m := range t1 {
		other, ok := t2[title]
		require.True(t, ok, "missing meeting %q in second run", title)
		assert.Equal(t, m.ID, other.ID, "meeting IDs must come from the seeded rng")
		assert.Equal(t, m.Start, other.Start)
		assert.Equal(t, m.End, other.End)
		assert.Equal(t, m.Participants, other.Participants)
		assert.Equal(t, m.Type, other.Type)
	}
}

func TestPopulateMeetingShape(t *testing.T) {
	store := meetings.NewStore(fixedNow)
	_, err := NewBuilder(1, fixedNow).Populate(store, 30)
	require.NoError(t, err)

	for _, m := range store.Meetings() {
		assert.True(t, m.End.After(m.Start), "meeting %s must end after it starts", m.Title)
		assert.GreaterOrEqual(t, len(m.Participants), 2)
		assert.LessOrEqual(t, len(m.Participants), 5)
		require.NotNil(t, m.EffectivenessScore)
		assert.GreaterOrEqual(t, *m.EffectivenessScore, 3.0)
		assert.LessOrEqual(t, *m.EffectivenessScore, 9.5)
		assert.Equal(t, m.Participants[0], m.Organizer)
	}
}
