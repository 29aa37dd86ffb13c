package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const defaultChatModelName = "gemini-1.5-flash-latest"

// ChatService proxies user messages to the Gemini API. Conversation
// history is kept per session, keyed by a UUID minted on the first message
// of a conversation. Each session is serialized by its own mutex so
// concurrent callers cannot interleave into one history.
type ChatService struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*chatSession
}

type chatSession struct {
	mu      sync.Mutex
	session *genai.ChatSession
}

// NewChatService creates the Gemini client. A missing API key is not
// fatal: the service stays up and every Send returns ErrChatUnavailable.
func NewChatService(apiKey string, logger *zap.Logger) *ChatService {
	s := &ChatService{
		modelName: defaultChatModelName,
		logger:    logger,
		sessions:  make(map[string]*chatSession),
	}

	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat endpoint will be unavailable")
		return s
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("failed to create GenAI client, chat endpoint will be unavailable", zap.Error(err))
		return s
	}
	s.client = client
	return s
}

func (s *ChatService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Warn("error closing GenAI client", zap.Error(err))
		}
	}
}

// Available reports whether the generative client was initialized.
func (s *ChatService) Available() bool {
	return s.client != nil
}

func (s *ChatService) getOrCreateSession(sessionID string) (string, *chatSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if cs, ok := s.sessions[sessionID]; ok {
			return sessionID, cs
		}
	} else {
		sessionID = uuid.NewString()
	}

	model := s.client.GenerativeModel(s.modelName)
	cs := &chatSession{session: model.StartChat()}
	s.sessions[sessionID] = cs
	return sessionID, cs
}

// Send forwards a message to the model within the given session's context
// and returns the concatenated streamed reply plus the session id. An
// empty sessionID starts a new conversation.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) (string, string, error) {
	if s.client == nil {
		return "", "", ErrChatUnavailable
	}

	sessionID, cs := s.getOrCreateSession(sessionID)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	iter := cs.session.SendMessageStream(ctx, genai.Text(message))

	var fragments []string
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", sessionID, fmt.Errorf("gemini chat request failed: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok && len(txt) > 0 {
				fragments = append(fragments, string(txt))
			} else if !ok {
				s.logger.Debug("gemini response part was not text", zap.String("type", fmt.Sprintf("%T", part)))
			}
		}
	}

	if len(fragments) == 0 {
		return "I'm sorry, I couldn't generate a response at this time. Please try again.", sessionID, nil
	}

	// Streamed fragments are joined with single spaces into one reply.
	return strings.Join(fragments, " "), sessionID, nil
}
