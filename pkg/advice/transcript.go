package advice

import "agri-assistant/domain"

// Transcript is the ordered list of entries of one conversation.
type Transcript struct {
	entries []domain.ChatMessage
}

func NewTranscript(entries ...domain.ChatMessage) *Transcript {
	t := &Transcript{}
	t.entries = append(t.entries, entries...)
	return t
}

func (t *Transcript) Append(entry domain.ChatMessage) {
	t.entries = append(t.entries, entry)
}

// Entries returns a copy.
func (t *Transcript) Entries() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

// Truncate drops everything after the first n entries.
func (t *Transcript) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(t.entries) {
		t.entries = t.entries[:n]
	}
}
