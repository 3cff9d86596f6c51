package persona

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	// personaInstruction sets the assistant's voice and register.
	personaInstruction = "You are a warm, caring AI loved one. You must sound personal and affectionate. Use the user's data to shape your response naturally."

	// DefaultMaxTokens bounds the generated reply length.
	DefaultMaxTokens = 2000

	// DefaultTemperature is the fixed creativity temperature.
	DefaultTemperature = 0.7
)

// BuildRequest assembles the completion request for a profile: a
// persona system message carrying a readable description of the user,
// a grounding system message embedding the profile verbatim as JSON,
// and the greeting as the user turn.
func BuildRequest(profile Profile) *Request {
	var sb strings.Builder
	sb.WriteString(personaInstruction)
	if len(profile) > 0 {
		sb.WriteString("\n\nHere is some information about the user:\n")
		sb.WriteString(describe(profile))
		sb.WriteString("\nRespond warmly, personally, and incorporate the details above when natural. You are the user's loved one - reply like you are talking with the user one to one.")
	}

	grounding, _ := json.Marshal(profile)

	return &Request{
		System: []string{
			sb.String(),
			"User data: " + string(grounding),
		},
		User:        profile.Greeting(),
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// describe renders profile entries as readable lines, one per key, in
// deterministic order: "- Loved one name is John."
func describe(profile Profile) string {
	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("- ")
		sb.WriteString(prettify(k))
		sb.WriteString(" is ")
		sb.WriteString(profile[k])
		sb.WriteString(".\n")
	}
	return sb.String()
}

// prettify turns a snake_case key into a sentence-case phrase.
func prettify(key string) string {
	words := strings.Split(key, "_")
	phrase := strings.Join(words, " ")
	if phrase == "" {
		return phrase
	}
	return strings.ToUpper(phrase[:1]) + phrase[1:]
}
