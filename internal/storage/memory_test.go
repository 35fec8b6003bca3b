package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagedesk/backend/internal/models"
)

func TestSeededStore(t *testing.T) {
	store := NewMemoryStore()

	tickets, err := store.ListTickets()
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	numbers := make(map[string]bool)
	for _, ticket := range tickets {
		numbers[ticket.TicketNumber] = true
		assert.Equal(t, models.TicketStatusResolved, ticket.Status)
		require.NotNil(t, ticket.ResolvedAt)
		require.NotNil(t, ticket.Similarity)
	}
	assert.True(t, numbers["TICKET-2847"])
	assert.True(t, numbers["TICKET-2791"])
	assert.True(t, numbers["TICKET-2756"])
}

func TestCreateTicketDefaults(t *testing.T) {
	store := NewEmptyMemoryStore()

	ticket, err := store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-1000",
		Title:        "Service degraded",
		Description:  "Intermittent 502 responses",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), ticket.ID)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
	assert.Nil(t, ticket.AssignedTo)
	assert.Nil(t, ticket.Similarity)
	assert.Nil(t, ticket.ResolvedAt)
	assert.False(t, ticket.CreatedAt.IsZero())
}

func TestCreateTicketResolvedAtStamp(t *testing.T) {
	store := NewEmptyMemoryStore()

	resolved, err := store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-1001",
		Title:        "Fixed already",
		Description:  "Historical record",
		Status:       models.TicketStatusResolved,
	})
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, resolved.CreatedAt, *resolved.ResolvedAt)

	open, err := store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-1002",
		Title:        "Still broken",
		Description:  "Ongoing",
	})
	require.NoError(t, err)
	assert.Nil(t, open.ResolvedAt)
}

func TestListTicketsNewestFirst(t *testing.T) {
	store := NewEmptyMemoryStore()

	for _, num := range []string{"TICKET-1", "TICKET-2", "TICKET-3"} {
		_, err := store.CreateTicket(CreateTicketParams{
			TicketNumber: num,
			Title:        "t",
			Description:  "d",
		})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	tickets, err := store.ListTickets()
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "TICKET-3", tickets[0].TicketNumber)
	assert.Equal(t, "TICKET-2", tickets[1].TicketNumber)
	assert.Equal(t, "TICKET-1", tickets[2].TicketNumber)

	// Listing is read-only: a second call returns the same sequence.
	again, err := store.ListTickets()
	require.NoError(t, err)
	assert.Equal(t, tickets, again)
}

func TestIdentifiersIncreasePerKind(t *testing.T) {
	store := NewEmptyMemoryStore()

	t1, err := store.CreateTicket(CreateTicketParams{TicketNumber: "A", Title: "t", Description: "d"})
	require.NoError(t, err)
	a1, err := store.CreateAnalysisResult(CreateAnalysisParams{InputText: "x"})
	require.NoError(t, err)
	m1, err := store.CreateChatMessage(CreateChatMessageParams{SessionID: "s", Message: "hi", IsUser: true})
	require.NoError(t, err)
	t2, err := store.CreateTicket(CreateTicketParams{TicketNumber: "B", Title: "t", Description: "d"})
	require.NoError(t, err)
	a2, err := store.CreateAnalysisResult(CreateAnalysisParams{InputText: "y"})
	require.NoError(t, err)
	m2, err := store.CreateChatMessage(CreateChatMessageParams{SessionID: "s", Message: "yo", IsUser: false})
	require.NoError(t, err)

	// Counters are independent per kind and strictly increasing.
	assert.Equal(t, uint(1), t1.ID)
	assert.Equal(t, uint(2), t2.ID)
	assert.Equal(t, uint(1), a1.ID)
	assert.Equal(t, uint(2), a2.ID)
	assert.Equal(t, uint(1), m1.ID)
	assert.Equal(t, uint(2), m2.ID)
}

func TestGetTicket(t *testing.T) {
	store := NewMemoryStore()

	ticket, err := store.GetTicket(1)
	require.NoError(t, err)
	assert.Equal(t, "TICKET-2847", ticket.TicketNumber)

	_, err = store.GetTicket(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchSimilarTickets(t *testing.T) {
	store := NewMemoryStore()

	tests := []struct {
		name        string
		query       string
		limit       int
		wantNumbers []string
	}{
		{
			name:        "top two by similarity",
			query:       "anything",
			limit:       2,
			wantNumbers: []string{"TICKET-2847", "TICKET-2791"},
		},
		{
			name:        "all three in score order",
			query:       "database timeout",
			limit:       3,
			wantNumbers: []string{"TICKET-2847", "TICKET-2791", "TICKET-2756"},
		},
		{
			name:        "limit larger than matches",
			query:       "",
			limit:       10,
			wantNumbers: []string{"TICKET-2847", "TICKET-2791", "TICKET-2756"},
		},
		{
			name:        "zero limit",
			query:       "anything",
			limit:       0,
			wantNumbers: []string{},
		},
		{
			name:        "negative limit",
			query:       "anything",
			limit:       -1,
			wantNumbers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets, err := store.SearchSimilarTickets(tt.query, tt.limit)
			require.NoError(t, err)
			require.Len(t, tickets, len(tt.wantNumbers))
			for i, num := range tt.wantNumbers {
				assert.Equal(t, num, tickets[i].TicketNumber)
			}
		})
	}
}

func TestSearchSimilarTicketsFilters(t *testing.T) {
	store := NewEmptyMemoryStore()

	// Open ticket matching keywords: excluded.
	_, err := store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-10",
		Title:        "Database slowness",
		Description:  "Queries pile up",
		Status:       models.TicketStatusOpen,
	})
	require.NoError(t, err)

	// Resolved ticket without any keyword: excluded.
	_, err = store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-11",
		Title:        "UI glitch",
		Description:  "Button misaligned",
		Status:       models.TicketStatusResolved,
	})
	require.NoError(t, err)

	// Resolved ticket matching on description keyword: included, scored 0.
	_, err = store.CreateTicket(CreateTicketParams{
		TicketNumber: "TICKET-12",
		Title:        "Payment errors",
		Description:  "Requests hit a timeout under load",
		Status:       models.TicketStatusResolved,
	})
	require.NoError(t, err)

	tickets, err := store.SearchSimilarTickets("any", 5)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "TICKET-12", tickets[0].TicketNumber)
	assert.Equal(t, 0, tickets[0].SimilarityScore())
}

func TestSearchSimilarTicketsEmptyStore(t *testing.T) {
	store := NewEmptyMemoryStore()

	tickets, err := store.SearchSimilarTickets("database", 3)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestListAnalysisResults(t *testing.T) {
	store := NewEmptyMemoryStore()

	for _, input := range []string{"first", "second", "third"} {
		_, err := store.CreateAnalysisResult(CreateAnalysisParams{InputText: input})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	results, err := store.ListAnalysisResults(2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "third", results[0].InputText)
	assert.Equal(t, "second", results[1].InputText)

	none, err := store.ListAnalysisResults(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChatMessagesPerSession(t *testing.T) {
	store := NewEmptyMemoryStore()

	_, err := store.CreateChatMessage(CreateChatMessageParams{SessionID: "s1", Message: "hello", IsUser: true})
	require.NoError(t, err)
	_, err = store.CreateChatMessage(CreateChatMessageParams{SessionID: "s2", Message: "other session", IsUser: true})
	require.NoError(t, err)
	_, err = store.CreateChatMessage(CreateChatMessageParams{SessionID: "s1", Message: "hi there", IsUser: false})
	require.NoError(t, err)
	// Session matching is exact and case-sensitive.
	_, err = store.CreateChatMessage(CreateChatMessageParams{SessionID: "S1", Message: "different case", IsUser: true})
	require.NoError(t, err)

	messages, err := store.ListChatMessages("s1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Message)
	assert.True(t, messages[0].IsUser)
	assert.Equal(t, "hi there", messages[1].Message)
	assert.False(t, messages[1].IsUser)
	assert.False(t, messages[1].Timestamp.Before(messages[0].Timestamp))

	empty, err := store.ListChatMessages("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUsers(t *testing.T) {
	store := NewEmptyMemoryStore()

	created, err := store.CreateUser(CreateUserParams{Username: "oncall", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	byID, err := store.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "oncall", byID.Username)

	byName, err := store.GetUserByUsername("oncall")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = store.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()

	tickets, err := store.ListTickets()
	require.NoError(t, err)
	tickets[0].Title = "mutated"

	again, err := store.ListTickets()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestPing(t *testing.T) {
	assert.NoError(t, NewMemoryStore().Ping())
}
