// Package intent turns free text into structure: an intent label and, for
// action intents, a named action with typed parameters. Extraction is
// deliberately simple keyword and regex matching; the rule tables are data so
// individual rules stay testable and replaceable.
package intent

import "strings"

// Intent is the coarse classification of a user query.
type Intent string

const (
	Question Intent = "question"
	Action   Intent = "action"
	Chitchat Intent = "chitchat"
)

// Keyword sets are tested in a fixed order and the first hit wins. Chitchat
// runs before action and question because its phrases overlap with question
// words ("what can you do" must not route to the question handler).
var (
	chitchatKeywords = []string{
		"hello", "hi", "hey", "thanks", "thank you", "bye",
		"good morning", "good afternoon", "good evening",
		"who are you", "what are you", "who is this",
		"what can you do", "what do you do", "introduce yourself",
		"your name", "are you", "مرحبا", "شكرا",
	}

	actionKeywords = []string{
		"balance", "transfer", "send", "pay", "transaction",
		"move", "deposit", "withdraw", "statement", "history",
		"show me", "list", "view",
	}

	questionKeywords = []string{
		"what", "how", "when", "where", "why", "which",
		"fee", "requirement", "policy", "explain", "tell me about",
	}
)

// Classify maps a raw query to an intent with a single ordered pass of
// keyword-set tests against the lower-cased text. The default is Question,
// which routes to document-grounded answering.
func Classify(query string) Intent {
	lower := strings.ToLower(query)
	if containsAny(lower, chitchatKeywords) {
		return Chitchat
	}
	if containsAny(lower, actionKeywords) {
		return Action
	}
	if containsAny(lower, questionKeywords) {
		return Question
	}
	return Question
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
