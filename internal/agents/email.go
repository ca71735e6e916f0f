package agents

import (
	"encoding/json"

	"github.com/remora-ai/remora/internal/agent"
)

// EmailContent is the structured document the email agent produces.
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// emailSchema is the JSON Schema enforced on the email agent's output.
var emailSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"subject": {
			"type": "string",
			"description": "The subject line of the email. Should be concise and descriptive."
		},
		"body": {
			"type": "string",
			"description": "The main content of the email. Should be well-formatted with proper greeting, paragraphs, and signature."
		}
	},
	"required": ["subject", "body"],
	"additionalProperties": false
}`)

// Email builds the structured-output email generator. It carries no
// tools; the schema constrains the model's entire response.
func Email() *agent.Agent {
	return &agent.Agent{
		Name:        "email_agent",
		Description: "Generates professional emails with structured subject and body",
		Instruction: `You are an Email Generation Assistant.
Your task is to generate a professional email based on the user's request.

GUIDELINES:
- Create an appropriate subject line (concise and relevant)
- Write a well-structured email body with:
    * Professional greeting
    * Clear and concise main content
    * Appropriate closing
    * Your name as signature
- Email tone should match the purpose (formal for business, friendly for colleagues)
- Keep emails concise but complete

IMPORTANT: Your response MUST be valid JSON matching this structure:
{
    "subject": "Subject line here",
    "body": "Email body here with proper paragraphs and formatting"
}

DO NOT include any explanations or additional text outside the JSON response.`,
		OutputSchema:     emailSchema,
		OutputSchemaName: "email_content",
	}
}

// ParseEmail decodes the email agent's final response.
func ParseEmail(content string) (*EmailContent, error) {
	var email EmailContent
	if err := json.Unmarshal([]byte(content), &email); err != nil {
		return nil, err
	}
	return &email, nil
}
