package domain

// PartType is the kind of a conversation part on the messaging platform
type PartType string

const (
	PartTypeNote       PartType = "note"
	PartTypeComment    PartType = "comment"
	PartTypeAssignment PartType = "assignment"
	PartTypeClose      PartType = "close"
	PartTypeOpen       PartType = "open"
)

// ConversationNote is one part of a conversation thread as fetched from the platform
type ConversationNote struct {
	ID       string
	PartType PartType
	Body     string // may be rich text (HTML)
}

// IsInternalNote reports whether the part is an internal note visible only to admins
func (n ConversationNote) IsInternalNote() bool {
	return n.PartType == PartTypeNote
}

// Conversation represents a conversation and its parts
type Conversation struct {
	ID    string
	Parts []ConversationNote
}

// Notes returns only the internal notes of the conversation, in thread order
func (c *Conversation) Notes() []ConversationNote {
	var result []ConversationNote
	for _, p := range c.Parts {
		if p.IsInternalNote() {
			result = append(result, p)
		}
	}
	return result
}
