package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/observability"
)

// BootstrapMessage replaces the caller's text on the first turn of a session
// so that the model opens the conversation.
const BootstrapMessage = "Start conversation with Tina."

const (
	responseMIMEType      = "text/plain"
	defaultProviderTimeout = 60 * time.Second
)

type Config struct {
	Model             string
	SystemInstruction string
	// ProviderTimeout bounds session creation plus the full reply drain.
	ProviderTimeout time.Duration
}

type Service struct {
	provider domain.ChatProvider
	store    domain.SessionStore
	metrics  *observability.Metrics
	cfg      Config
	locks    *sessionLocks
	now      func() time.Time
}

func NewService(
	provider domain.ChatProvider,
	store domain.SessionStore,
	cfg Config,
	metrics *observability.Metrics,
) *Service {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}

	return &Service{
		provider: provider,
		store:    store,
		metrics:  metrics,
		cfg:      cfg,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
}

// HandleTurnInput uses pointers so that an absent field can be told apart
// from an empty one. An empty UserResponse is valid.
type HandleTurnInput struct {
	SessionID    *string
	UserResponse *string
}

type HandleTurnOutput struct {
	Reply      string
	Transcript domain.Transcript
}

// HandleTurn relays one user turn to the provider and records both turns.
//
// The first turn of a session ignores UserResponse and sends BootstrapMessage
// instead. On any provider failure the transcript is left untouched and the
// returned error is domain.ErrHistorySync or domain.ErrProvider.
func (s *Service) HandleTurn(ctx context.Context, in HandleTurnInput) (*HandleTurnOutput, error) {
	log := observability.LoggerFromContext(ctx)

	if in.SessionID == nil || in.UserResponse == nil {
		s.metrics.RecordTurn(observability.OutcomeValidationError)
		return nil, domain.ErrValidation
	}

	id := domain.SessionID(*in.SessionID)
	unlock := s.locks.lock(id)
	defer unlock()

	transcript := s.store.Get(id)

	kind := "continuation"
	userText := *in.UserResponse
	if len(transcript) == 0 {
		kind = "initial"
		userText = BootstrapMessage
	}

	log.Info().
		Str("session_id", string(id)).
		Str("turn_kind", kind).
		Int("history_len", len(transcript)).
		Msg("handling turn")

	history := BuildHistory(transcript, userText)

	start := s.now()
	reply, err := s.generate(ctx, history)
	elapsed := s.now().Sub(start)
	s.metrics.ObserveProvider(elapsed.Seconds())

	if err != nil {
		classified := domain.ClassifyProviderError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			classified = domain.ErrProvider
		}

		log.Error().
			Err(err).
			Str("session_id", string(id)).
			Str("classified_as", classified.Error()).
			Dur("elapsed", elapsed).
			Msg("provider call failed")

		if errors.Is(classified, domain.ErrHistorySync) {
			s.metrics.RecordTurn(observability.OutcomeHistorySync)
		} else {
			s.metrics.RecordTurn(observability.OutcomeProviderError)
		}
		return nil, classified
	}

	s.store.Append(id,
		domain.Turn{Role: domain.RoleUser, Text: userText},
		domain.Turn{Role: domain.RoleModel, Text: reply},
	)
	s.metrics.RecordTurn(observability.OutcomeOK)
	s.metrics.SetSessions(s.store.Len())

	log.Info().
		Str("session_id", string(id)).
		Dur("elapsed", elapsed).
		Int("reply_len", len(reply)).
		Msg("turn completed")

	return &HandleTurnOutput{
		Reply:      reply,
		Transcript: s.store.Get(id),
	}, nil
}

// Reset discards every session.
func (s *Service) Reset() {
	s.store.Clear()
	s.metrics.SetSessions(0)
}

// generate sends history to the provider. The last entry is the live message,
// everything before it primes the chat session.
func (s *Service) generate(ctx context.Context, history []domain.Content) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	prior, latest := history[:len(history)-1], history[len(history)-1]

	chat, err := s.provider.CreateChatSession(ctx, domain.ChatConfig{
		Model:             s.cfg.Model,
		SystemInstruction: s.cfg.SystemInstruction,
		Generation:        domain.GenerationConfig{ResponseMIMEType: responseMIMEType},
	}, prior)
	if err != nil {
		return "", err
	}

	var reply strings.Builder
	for fragment, err := range chat.SendMessageStream(ctx, contentText(latest)) {
		if err != nil {
			return "", err
		}
		reply.WriteString(fragment)
	}

	// A stream that ended quietly after the deadline is still a failure.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return reply.String(), nil
}

// BuildHistory translates the stored transcript into provider contents, in
// order, followed by the current user message.
func BuildHistory(transcript domain.Transcript, userText string) []domain.Content {
	out := make([]domain.Content, 0, len(transcript)+1)
	for _, t := range transcript {
		out = append(out, domain.Content{
			Role:  t.Role,
			Parts: []domain.Part{{Text: t.Text}},
		})
	}
	return append(out, domain.Content{
		Role:  domain.RoleUser,
		Parts: []domain.Part{{Text: userText}},
	})
}

func contentText(c domain.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
