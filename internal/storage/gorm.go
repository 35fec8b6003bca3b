package storage

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/triagedesk/backend/internal/models"
)

// GormStore is the optional persistent implementation of Store, selected with
// STORAGE_DRIVER=postgres. It keeps the exact contract of MemoryStore:
// write-once records, creation-time defaults and the fixed similarity
// heuristic.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SeedIfEmpty inserts the demo tickets unless the tickets table already has
// rows. Safe to call on every startup.
func (s *GormStore) SeedIfEmpty() error {
	var count int64
	if err := s.db.Model(&models.Ticket{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, params := range SeedTickets() {
		if _, err := s.CreateTicket(params); err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) CreateTicket(params CreateTicketParams) (*models.Ticket, error) {
	now := time.Now().UTC()
	ticket := models.Ticket{
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
	if ticket.Status == models.TicketStatusResolved {
		resolvedAt := now
		ticket.ResolvedAt = &resolvedAt
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *GormStore) ListTickets() ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *GormStore) GetTicket(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (s *GormStore) SearchSimilarTickets(query string, limit int) ([]models.Ticket, error) {
	if limit <= 0 {
		return []models.Ticket{}, nil
	}

	var resolved []models.Ticket
	if err := s.db.Where("status = ?", models.TicketStatusResolved).Find(&resolved).Error; err != nil {
		return nil, err
	}

	// Keyword matching stays in Go so both store implementations share one
	// filter.
	matched := make([]models.Ticket, 0, len(resolved))
	for i := range resolved {
		if matchesSimilarityFilter(&resolved[i]) {
			matched = append(matched, resolved[i])
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

func (s *GormStore) CreateAnalysisResult(params CreateAnalysisParams) (*models.AnalysisResult, error) {
	result := models.AnalysisResult{
		InputText:          params.InputText,
		RootCause:          params.RootCause,
		Solutions:          params.Solutions,
		DiagnosticCommands: params.DiagnosticCommands,
		IssueType:          params.IssueType,
		Environment:        params.Environment,
		Confidence:         params.Confidence,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.db.Create(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GormStore) ListAnalysisResults(limit int) ([]models.AnalysisResult, error) {
	if limit <= 0 {
		return []models.AnalysisResult{}, nil
	}
	var results []models.AnalysisResult
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *GormStore) CreateChatMessage(params CreateChatMessageParams) (*models.ChatMessage, error) {
	message := models.ChatMessage{
		SessionID: params.SessionID,
		Message:   params.Message,
		IsUser:    params.IsUser,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *GormStore) ListChatMessages(sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateUser(params CreateUserParams) (*models.User, error) {
	user := models.User{
		Username: params.Username,
		Password: params.Password,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
