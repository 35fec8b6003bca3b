package storage

import (
	"strings"

	"github.com/triagedesk/backend/internal/models"
)

// DefaultSimilarLimit is the number of similar tickets returned when the
// caller does not ask for a specific limit.
const DefaultSimilarLimit = 3

// DefaultAnalysisLimit bounds ListAnalysisResults when the caller does not ask
// for a specific limit.
const DefaultAnalysisLimit = 10

// CreateTicketParams carries the caller-supplied fields for a new ticket.
// TicketNumber, Title and Description are required; everything else is
// optional with defaults applied by the store.
type CreateTicketParams struct {
	TicketNumber string
	Title        string
	Description  string
	Status       string
	Priority     string
	AssignedTo   *string
	ResolvedBy   *string
	Environment  *string
	IssueType    *string
	Similarity   *int
	Resolution   *string
}

// CreateAnalysisParams carries the fields for a new analysis result.
type CreateAnalysisParams struct {
	InputText          string
	RootCause          string
	Solutions          []models.Solution
	DiagnosticCommands []models.DiagnosticCommand
	IssueType          string
	Environment        string
	Confidence         int
}

// CreateChatMessageParams carries the fields for a new chat message.
type CreateChatMessageParams struct {
	SessionID string
	Message   string
	IsUser    bool
}

// CreateUserParams carries the fields for a new user account.
type CreateUserParams struct {
	Username string
	Password string
}

// Store is the authoritative keeper of all records. Implementations assign
// identifiers, apply field defaults and are safe for concurrent use. Records
// are write-once: there are no update or delete operations.
type Store interface {
	// Tickets
	CreateTicket(params CreateTicketParams) (*models.Ticket, error)
	ListTickets() ([]models.Ticket, error)
	GetTicket(id uint) (*models.Ticket, error)
	// SearchSimilarTickets returns up to limit resolved tickets matching the
	// similarity heuristic, sorted by stored similarity score descending.
	SearchSimilarTickets(query string, limit int) ([]models.Ticket, error)

	// Analysis results
	CreateAnalysisResult(params CreateAnalysisParams) (*models.AnalysisResult, error)
	ListAnalysisResults(limit int) ([]models.AnalysisResult, error)

	// Chat messages
	CreateChatMessage(params CreateChatMessageParams) (*models.ChatMessage, error)
	ListChatMessages(sessionID string) ([]models.ChatMessage, error)

	// Users
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(params CreateUserParams) (*models.User, error)

	// Ping reports whether the backing store is reachable.
	Ping() error
}

// matchesSimilarityFilter is the shared ranking filter: resolved tickets whose
// title mentions database or connection issues, or whose description mentions
// timeouts or pools. The keyword set is fixed; the search query does not
// participate in matching.
func matchesSimilarityFilter(t *models.Ticket) bool {
	if t.Status != models.TicketStatusResolved {
		return false
	}
	title := strings.ToLower(t.Title)
	description := strings.ToLower(t.Description)
	return strings.Contains(title, "database") ||
		strings.Contains(title, "connection") ||
		strings.Contains(description, "timeout") ||
		strings.Contains(description, "pool")
}
