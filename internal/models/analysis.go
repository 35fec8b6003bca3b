package models

import "time"

// Solution is a single recommended fix inside an analysis result.
type Solution struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DiagnosticCommand is a shell command suggested for further diagnosis.
type DiagnosticCommand struct {
	Description string `json:"description"`
	Command     string `json:"command"`
}

// AnalysisResult is the persisted structured diagnosis for one analyze
// request. Write-once; Environment is the caller-supplied value, not the one
// echoed back by the AI.
type AnalysisResult struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	InputText          string              `json:"inputText" gorm:"type:text;not null"`
	RootCause          string              `json:"rootCause" gorm:"type:text"`
	Solutions          []Solution          `json:"solutions" gorm:"type:jsonb;serializer:json"`
	DiagnosticCommands []DiagnosticCommand `json:"diagnosticCommands" gorm:"type:jsonb;serializer:json"`
	IssueType          string              `json:"issueType"`
	Environment        string              `json:"environment"`
	Confidence         int                 `json:"confidence"`
	CreatedAt          time.Time           `json:"createdAt"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}
