package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/triagedesk/backend/internal/logger"
	"github.com/triagedesk/backend/internal/models"
	"github.com/triagedesk/backend/internal/storage"
)

// AnalysisService turns raw issue text into a persisted structured diagnosis
// plus similar-ticket context.
type AnalysisService struct {
	store storage.Store
	llm   Generator
}

func NewAnalysisService(store storage.Store, llm Generator) *AnalysisService {
	return &AnalysisService{store: store, llm: llm}
}

// diagnosis is the JSON shape the model is instructed to return.
type diagnosis struct {
	RootCause          string                     `json:"rootCause"`
	Solutions          []models.Solution          `json:"solutions"`
	DiagnosticCommands []models.DiagnosticCommand `json:"diagnosticCommands"`
	IssueType          string                     `json:"issueType"`
	Confidence         int                        `json:"confidence"`
}

// Analyze validates the input, asks the model for a structured diagnosis,
// persists it and pairs it with similar resolved tickets. A model reply that
// is not valid JSON degrades to a fixed fallback diagnosis; a failed model
// call is an error. No partial results: either both values return or neither.
func (s *AnalysisService) Analyze(ctx context.Context, inputText, issueType, environment string) (*models.AnalysisResult, []models.Ticket, error) {
	if inputText == "" {
		return nil, nil, &ValidationError{Message: "Input text is required"}
	}

	prompt := BuildAnalysisPrompt(inputText, issueType, environment)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, &CapabilityError{Op: "analyze", Err: err}
	}

	diag := parseDiagnosis(raw, issueType)

	result, err := s.store.CreateAnalysisResult(storage.CreateAnalysisParams{
		InputText:          inputText,
		RootCause:          diag.RootCause,
		Solutions:          diag.Solutions,
		DiagnosticCommands: diag.DiagnosticCommands,
		IssueType:          diag.IssueType,
		Environment:        environment,
		Confidence:         diag.Confidence,
	})
	if err != nil {
		return nil, nil, err
	}

	similar, err := s.store.SearchSimilarTickets(inputText, storage.DefaultSimilarLimit)
	if err != nil {
		return nil, nil, err
	}

	return result, similar, nil
}

// ListRecent returns the most recent analysis results, newest first.
func (s *AnalysisService) ListRecent(limit int) ([]models.AnalysisResult, error) {
	return s.store.ListAnalysisResults(limit)
}

// parseDiagnosis decodes the model reply, tolerating markdown code fences.
// Anything that does not decode becomes the fixed fallback diagnosis; the
// request still succeeds.
func parseDiagnosis(raw, issueType string) diagnosis {
	clean := stripCodeFences(raw)

	var diag diagnosis
	if err := json.Unmarshal([]byte(clean), &diag); err != nil {
		logger.WithError(err, "analysis_service").Warn("model reply was not valid JSON, using fallback diagnosis")
		return fallbackDiagnosis(issueType)
	}
	return diag
}

func fallbackDiagnosis(issueType string) diagnosis {
	if issueType == "" {
		issueType = "unknown"
	}
	return diagnosis{
		RootCause: "Unable to parse AI response",
		Solutions: []models.Solution{
			{Title: "Manual Analysis", Description: "Please analyze the issue manually"},
		},
		DiagnosticCommands: []models.DiagnosticCommand{
			{Description: "Check logs", Command: "tail -f /var/log/application.log"},
		},
		IssueType:  issueType,
		Confidence: 50,
	}
}

func stripCodeFences(response string) string {
	clean := strings.TrimSpace(response)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	}
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	if strings.HasSuffix(clean, "```") {
		clean = strings.TrimSuffix(clean, "```")
	}
	return strings.TrimSpace(clean)
}
