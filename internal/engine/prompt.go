package engine

import (
	"fmt"
	"strings"

	"dotpi/internal/history"
	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

const noHistoryLine = "(No prior chat history yet.)\n"

// Persona names the assistant and the person it talks to.
type Persona struct {
	Assistant string
	User      string
}

func (p Persona) transcript(turns []history.Turn) string {
	if len(turns) == 0 {
		return noHistoryLine
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n%s: %s\n", p.User, t.User, p.Assistant, t.AI)
	}
	return b.String()
}

// SystemPrompt embeds the persona, recent transcript, mood and tone.
func (p Persona) SystemPrompt(turns []history.Turn, m mood.Mood, t tone.Tone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s's personal AI coach and creative partner. ", p.Assistant, p.User)
	b.WriteString("You remember your recent chats and use that context naturally in conversation. ")
	b.WriteString("Speak warmly, honestly, and with emotional intelligence. ")
	fmt.Fprintf(&b, "Always address the user by name, '%s'. ", p.User)
	b.WriteString("Be realistic yet motivating, using humor or depth only when it fits.")
	b.WriteString("\n\nRecent chat context:\n")
	b.WriteString(p.transcript(turns))
	fmt.Fprintf(&b, "\nDetected mood: %s. Preferred tone: %s. ", m, t)
	b.WriteString("Your reply should feel natural, human-like, and emotionally attuned. ")
	b.WriteString("Be concise: a few sentences at most unless depth is clearly needed.")
	return b.String()
}
