package models

import "time"

const (
	TicketStatusOpen     = "open"
	TicketStatusResolved = "resolved"

	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

// Ticket is a support ticket. Records are write-once: after creation no field
// is ever updated, including ResolvedAt, which is set only when the ticket is
// created in resolved state.
type Ticket struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TicketNumber string     `json:"ticketNumber" gorm:"not null"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text;not null"`
	Status       string     `json:"status" gorm:"not null;default:'open'"`
	Priority     string     `json:"priority" gorm:"not null;default:'medium'"`
	AssignedTo   *string    `json:"assignedTo"`
	ResolvedBy   *string    `json:"resolvedBy"`
	Environment  *string    `json:"environment"`
	IssueType    *string    `json:"issueType"`
	Similarity   *int       `json:"similarity"`
	Resolution   *string    `json:"resolution" gorm:"type:text"`
	CreatedAt    time.Time  `json:"createdAt"`
	ResolvedAt   *time.Time `json:"resolvedAt"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// SimilarityScore returns the stored similarity score, treating absent as 0.
func (t *Ticket) SimilarityScore() int {
	if t.Similarity == nil {
		return 0
	}
	return *t.Similarity
}
