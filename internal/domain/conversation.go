package domain

// Turn is one utterance in a conversation (user or model).
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is the chronological list of turns for a session.
type Transcript []Turn

// Clone returns a copy that does not share the backing array.
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Part is a single piece of provider content. Only text is used.
type Part struct {
	Text string
}

// Content is a role-tagged provider message, the shape the provider expects
// in a chat history.
type Content struct {
	Role  Role
	Parts []Part
}

// GenerationConfig carries the provider generation options.
type GenerationConfig struct {
	ResponseMIMEType string
}

// ChatConfig describes the provider chat session to create.
type ChatConfig struct {
	Model             string
	SystemInstruction string
	Generation        GenerationConfig
}
