package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/triagedesk/backend/internal/models"
)

// MemoryStore keeps all records in process memory. It is the default store:
// state is volatile and grows without bound for the lifetime of the process.
// One store-wide mutex guards every counter increment and insert.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[uint]*models.User
	tickets      map[uint]*models.Ticket
	analyses     map[uint]*models.AnalysisResult
	chatMsgs     map[uint]*models.ChatMessage
	nextUserID   uint
	nextTicket   uint
	nextAnalysis uint
	nextChatMsg  uint
}

// NewMemoryStore returns a store seeded with the demo resolved tickets so the
// similarity ranking has something to return before any real tickets exist.
func NewMemoryStore() *MemoryStore {
	s := NewEmptyMemoryStore()
	for _, params := range SeedTickets() {
		s.mustCreateTicket(params)
	}
	return s
}

// NewEmptyMemoryStore returns a store with no seed data. Used by tests that
// need full control over ticket contents.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]*models.User),
		tickets:      make(map[uint]*models.Ticket),
		analyses:     make(map[uint]*models.AnalysisResult),
		chatMsgs:     make(map[uint]*models.ChatMessage),
		nextUserID:   1,
		nextTicket:   1,
		nextAnalysis: 1,
		nextChatMsg:  1,
	}
}

func (s *MemoryStore) mustCreateTicket(params CreateTicketParams) {
	if _, err := s.CreateTicket(params); err != nil {
		panic(fmt.Sprintf("storage: seeding ticket %q: %v", params.TicketNumber, err))
	}
}

func (s *MemoryStore) CreateTicket(params CreateTicketParams) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ticket := &models.Ticket{
		ID:           s.nextTicket,
		TicketNumber: params.TicketNumber,
		Title:        params.Title,
		Description:  params.Description,
		Status:       params.Status,
		Priority:     params.Priority,
		AssignedTo:   params.AssignedTo,
		ResolvedBy:   params.ResolvedBy,
		Environment:  params.Environment,
		IssueType:    params.IssueType,
		Similarity:   params.Similarity,
		Resolution:   params.Resolution,
		CreatedAt:    now,
	}
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = models.TicketPriorityMedium
	}
	// ResolvedAt is stamped only for tickets created already resolved and is
	// never touched afterwards.
	if ticket.Status == models.TicketStatusResolved {
		resolvedAt := now
		ticket.ResolvedAt = &resolvedAt
	}

	s.nextTicket++
	s.tickets[ticket.ID] = ticket

	copied := *ticket
	return &copied, nil
}

func (s *MemoryStore) ListTickets() ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		tickets = append(tickets, *t)
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

func (s *MemoryStore) GetTicket(id uint) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (s *MemoryStore) SearchSimilarTickets(query string, limit int) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []models.Ticket{}, nil
	}

	matched := make([]models.Ticket, 0)
	for _, t := range s.tickets {
		if matchesSimilarityFilter(t) {
			matched = append(matched, *t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SimilarityScore() > matched[j].SimilarityScore()
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryStore) CreateAnalysisResult(params CreateAnalysisParams) (*models.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &models.AnalysisResult{
		ID:                 s.nextAnalysis,
		InputText:          params.InputText,
		RootCause:          params.RootCause,
		Solutions:          params.Solutions,
		DiagnosticCommands: params.DiagnosticCommands,
		IssueType:          params.IssueType,
		Environment:        params.Environment,
		Confidence:         params.Confidence,
		CreatedAt:          time.Now().UTC(),
	}
	s.nextAnalysis++
	s.analyses[result.ID] = result

	copied := *result
	return &copied, nil
}

func (s *MemoryStore) ListAnalysisResults(limit int) ([]models.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []models.AnalysisResult{}, nil
	}

	results := make([]models.AnalysisResult, 0, len(s.analyses))
	for _, r := range s.analyses {
		results = append(results, *r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) CreateChatMessage(params CreateChatMessageParams) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := &models.ChatMessage{
		ID:        s.nextChatMsg,
		SessionID: params.SessionID,
		Message:   params.Message,
		IsUser:    params.IsUser,
		Timestamp: time.Now().UTC(),
	}
	s.nextChatMsg++
	s.chatMsgs[message.ID] = message

	copied := *message
	return &copied, nil
}

func (s *MemoryStore) ListChatMessages(sessionID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.ChatMessage, 0)
	for _, m := range s.chatMsgs {
		if m.SessionID == sessionID {
			messages = append(messages, *m)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (s *MemoryStore) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(params CreateUserParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &models.User{
		ID:       s.nextUserID,
		Username: params.Username,
		Password: params.Password,
	}
	s.nextUserID++
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

// Ping always succeeds: the backing state is this process.
func (s *MemoryStore) Ping() error {
	return nil
}
