package llm

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
)

// MockReply scripts one provider call.
type MockReply struct {
	Fragments []string
	// Err is yielded after the fragments.
	Err error
	// CreateErr fails the chat session creation itself.
	CreateErr error
	// Delay is waited before the first fragment, honouring ctx.
	Delay time.Duration
}

// MockCall is what the provider received on one call.
type MockCall struct {
	Config  domain.ChatConfig
	History []domain.Content
	Message string
}

// MockProvider is a scripted domain.ChatProvider for local mode and tests.
// Once the script runs out it echoes the user's message.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []MockCall
}

func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Reply is a shortcut for a single-fragment successful reply.
func Reply(text string) MockReply {
	return MockReply{Fragments: []string{text}}
}

func (m *MockProvider) Enqueue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns the recorded calls in order.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockProvider) CreateChatSession(
	_ context.Context,
	cfg domain.ChatConfig,
	history []domain.Content,
) (domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next *MockReply
	if len(m.replies) > 0 {
		r := m.replies[0]
		m.replies = m.replies[1:]
		next = &r
	}
	if next != nil && next.CreateErr != nil {
		return nil, next.CreateErr
	}

	hist := make([]domain.Content, len(history))
	copy(hist, history)
	m.calls = append(m.calls, MockCall{Config: cfg, History: hist})

	return &mockChatSession{provider: m, index: len(m.calls) - 1, reply: next}, nil
}

type mockChatSession struct {
	provider *MockProvider
	index    int
	reply    *MockReply
}

func (s *mockChatSession) SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error] {
	s.provider.mu.Lock()
	s.provider.calls[s.index].Message = text
	s.provider.mu.Unlock()

	reply := MockReply{Fragments: []string{fmt.Sprintf("Tina (mock) heard: %q", text)}}
	if s.reply != nil {
		reply = *s.reply
	}

	return func(yield func(string, error) bool) {
		if reply.Delay > 0 {
			select {
			case <-ctx.Done():
				yield("", ctx.Err())
				return
			case <-time.After(reply.Delay):
			}
		}
		for _, f := range reply.Fragments {
			if !yield(f, nil) {
				return
			}
		}
		if reply.Err != nil {
			yield("", reply.Err)
		}
	}
}
