// Package reformat turns raw student–chatbot conversation logs into a
// coding-ready spreadsheet. Each task directory holds one JSON
// transcript file per student; every user message becomes one row
// together with the assistant messages around it.
package reformat

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// DialogTurn is one user message with its surrounding assistant
// messages.
type DialogTurn struct {
	CaseID    string
	Week      int
	Index     int // position of the user message within the transcript
	Timestamp time.Time
	BotBefore string
	User      string
	BotAfter  string
}

// message is one entry of a transcript JSON array.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// labeledPattern extracts a single pre-formatted turn from transcripts
// that are not valid JSON.
var labeledPattern = regexp.MustCompile(
	`(?s)case_id\s+(.*?)\s+week\s+(.*?)\s+idx\s+(.*?)\s+timestamp\s+(.*?)\s+chatgpt_before\s+(.*?)\s+user\s+(.*?)\s+chatgpt_after\s+(.*)`)

// ParseConversation extracts dialog turns from one transcript file.
// Empty transcripts ("" or "[]") yield no turns. Files that are not
// valid JSON fall back to the labeled-field format; content that
// matches neither yields (nil, false).
func ParseConversation(content []byte, caseID string, week int) ([]DialogTurn, bool) {
	text := strings.TrimSpace(string(content))
	if text == "" || text == "[]" {
		return nil, true
	}

	var messages []message
	if err := json.Unmarshal([]byte(text), &messages); err != nil {
		return parseLabeled(text, caseID, week)
	}

	var turns []DialogTurn
	for i, m := range messages {
		// A trailing user message with no response is not a turn.
		if m.Role != "user" || i+1 >= len(messages) {
			continue
		}

		turn := DialogTurn{
			CaseID: caseID,
			Week:   week,
			Index:  i,
			User:   m.Content,
		}
		if messages[i+1].Role == "assistant" {
			turn.BotAfter = messages[i+1].Content
		}
		if i > 0 && (messages[i-1].Role == "assistant" || messages[i-1].Role == "system") {
			turn.BotBefore = messages[i-1].Content
		}
		turns = append(turns, turn)
	}
	return turns, true
}

// parseLabeled handles the legacy plain-text export format.
func parseLabeled(text, caseID string, week int) ([]DialogTurn, bool) {
	m := labeledPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return []DialogTurn{{
		CaseID:    caseID,
		Week:      week,
		BotBefore: strings.TrimSpace(m[5]),
		User:      strings.TrimSpace(m[6]),
		BotAfter:  strings.TrimSpace(m[7]),
	}}, true
}
