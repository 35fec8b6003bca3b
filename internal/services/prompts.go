package services

import (
	"fmt"
	"strings"
)

// Chat roles used when assembling conversation context.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one role/content pair of assembled conversation context.
type ChatTurn struct {
	Role    string
	Content string
}

const analysisPromptTemplate = `You are an expert support engineer AI assistant. Analyze the provided error message, log, or technical issue and provide a structured response in JSON format.

Your response should include:
1. rootCause: A clear explanation of what's causing the issue
2. solutions: An array of recommended solutions with title and description
3. diagnosticCommands: An array of useful diagnostic commands with description and command
4. issueType: The type of issue (database, network, application, performance, etc.)
5. confidence: A confidence score from 1-100

Be specific, actionable, and professional in your recommendations.

Analyze this technical issue:
Input: %s
Issue Type: %s
Environment: %s

Provide analysis in JSON format only, no additional text.`

// BuildAnalysisPrompt renders the fixed analysis template. Absent issue type
// and environment fall back to the literal placeholders the template expects.
func BuildAnalysisPrompt(inputText, issueType, environment string) string {
	if issueType == "" {
		issueType = "Auto-detect"
	}
	if environment == "" {
		environment = "Not specified"
	}
	return fmt.Sprintf(analysisPromptTemplate, inputText, issueType, environment)
}

const chatInstructionPreamble = `You are an AI support assistant helping with technical troubleshooting.
Provide helpful, concise, and actionable responses to technical questions.
If asked for diagnostic commands, provide them in a clear format.
Keep responses focused and professional.`

// BuildChatPrompt renders accumulated turns into a single conversation-format
// prompt. System turns carry no content into the rendered conversation and
// are skipped.
func BuildChatPrompt(turns []ChatTurn) string {
	var conversation strings.Builder
	for _, turn := range turns {
		if turn.Role == RoleSystem {
			continue
		}
		if turn.Role == RoleUser {
			conversation.WriteString("Human: ")
		} else {
			conversation.WriteString("Assistant: ")
		}
		conversation.WriteString(turn.Content)
		conversation.WriteString("\n")
	}
	return fmt.Sprintf("%s\n\nConversation:\n%s\nAssistant:", chatInstructionPreamble, conversation.String())
}
