package memory

import (
	"fmt"
	"strings"
)

const extractionPromptTemplate = `You are the memory system for Judy, a household assistant. Review the exchange below and extract durable facts about the household worth remembering for future conversations.

Each fact must be assigned exactly one of these categories: %s.

Rules:
- Only extract specific, durable facts stated in the exchange
- Do not extract generic advice, bare questions, or vague statements
- Each fact should be a single, concise statement
- Return ONLY a JSON array of {"memory": "...", "category": "..."} objects
- Return [] if nothing is worth remembering

Examples:
User: "Kendall is allergic to tree nuts"
-> [{"memory": "Kendall is allergic to tree nuts", "category": "allergy"}]
User: "Jake loved that pizza, but I can't spend more than $100 a week on groceries"
-> [{"memory": "Jake loves pizza", "category": "favorite"}, {"memory": "Weekly grocery budget is $100", "category": "budget"}]
User: "What should I cook tonight?"
-> []

User: %s
Assistant: %s`

// BuildExtractionPrompt renders the instruction string for the extraction
// call. It is deterministic and side-effect-free; the raw utterance and
// reply are interpolated verbatim at the end. Callers must not build a
// prompt for an empty utterance — extraction is skipped entirely in that
// case to avoid a pointless model call.
func BuildExtractionPrompt(userUtterance, assistantReply string) string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return fmt.Sprintf(extractionPromptTemplate, strings.Join(names, ", "), userUtterance, assistantReply)
}
