package domain

import (
	"context"
	"iter"
)

// SessionStore keeps the transcript of every session in the process.
type SessionStore interface {
	// Get returns a copy of the stored transcript, empty if the session is unseen.
	Get(id SessionID) Transcript
	// Append adds turns in order, creating the session if absent.
	Append(id SessionID, turns ...Turn)
	// Clear discards all sessions.
	Clear()
	// Len reports the number of known sessions.
	Len() int
}

// ChatProvider is the external generative-language capability.
type ChatProvider interface {
	CreateChatSession(ctx context.Context, cfg ChatConfig, history []Content) (ChatSession, error)
}

// ChatSession sends the latest user message and yields the reply incrementally.
type ChatSession interface {
	SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error]
}
