package domain

// MessageType is the visibility of an admin reply
type MessageType string

const (
	// MessageTypeComment is visible to the customer
	MessageTypeComment MessageType = "comment"
	// MessageTypeNote is an internal note visible only to admins
	MessageTypeNote MessageType = "note"
)

// ReplierAdmin is the only replier type this service sends as
const ReplierAdmin = "admin"

// Reply represents an outbound admin reply to a conversation
type Reply struct {
	ConversationID string
	AdminID        string
	MessageType    MessageType
	Body           string
}

// IsNote checks if the reply is an internal note
func (r *Reply) IsNote() bool {
	return r.MessageType == MessageTypeNote
}
