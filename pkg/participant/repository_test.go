package participant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlapp/overlapp/internal/test_utils"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
)

func storeTestEvent(t *testing.T, repo *event.RepositoryImpl, title string) event.Event {
	t.Helper()
	stored, err := repo.Store(context.Background(), event.Event{
		Title:    title,
		Timezone: "UTC",
		Type:     event.TypeDated,
		Days: []event.Day{
			{
				Kind:      grid.DayKindDate,
				Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				StartTime: grid.MustParseTimeOfDay("09:00"),
				EndTime:   grid.MustParseTimeOfDay("17:00"),
			},
		},
	})
	require.NoError(t, err)
	return stored
}

func TestRepository_insertAndFind(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	stored := storeTestEvent(t, event.NewRepository(db), "Picnic")

	inserted, err := repo.Insert(context.Background(), Participant{
		EventID: stored.ID, Username: "alice", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, inserted.ID)

	byID, err := repo.FindByID(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted, *byID)

	byName, err := repo.FindByEventAndUsername(context.Background(), stored.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, byName.ID)

	_, err = repo.FindByEventAndUsername(context.Background(), stored.ID, "bob")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = repo.FindByID(context.Background(), inserted.ID+1)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestRepository_usernameScopedToEvent(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	events := event.NewRepository(db)
	first := storeTestEvent(t, events, "Picnic")
	second := storeTestEvent(t, events, "Retro")

	_, err := repo.Insert(context.Background(), Participant{EventID: first.ID, Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	// the same username may join a different event
	_, err = repo.Insert(context.Background(), Participant{EventID: second.ID, Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	// but not the same event twice
	_, err = repo.Insert(context.Background(), Participant{EventID: first.ID, Username: "alice", PasswordHash: "x"})
	assert.Error(t, err)
}

func TestRepository_listByEvent(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	events := event.NewRepository(db)
	first := storeTestEvent(t, events, "Picnic")
	second := storeTestEvent(t, events, "Retro")

	for _, username := range []string{"alice", "bob"} {
		_, err := repo.Insert(context.Background(), Participant{EventID: first.ID, Username: username, PasswordHash: "x"})
		require.NoError(t, err)
	}
	_, err := repo.Insert(context.Background(), Participant{EventID: second.ID, Username: "carol", PasswordHash: "x"})
	require.NoError(t, err)

	listed, err := repo.ListByEvent(context.Background(), first.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "alice", listed[0].Username)
	assert.Equal(t, "bob", listed[1].Username)
}
