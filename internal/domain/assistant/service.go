package assistant

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/auth"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/commands"
)

// Gate decides whether a sender may use the assistant.
type Gate interface {
	Check(ctx context.Context, senderID, text string) (auth.Decision, error)
}

// CommandDispatcher executes slash commands.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, req commands.Request) error
}

// Service is the entry point for every inbound message: it applies the auth
// gate, executes slash commands and hands free text to the Router.
type Service struct {
	gate       Gate
	router     *Router
	users      UserRegistry
	dispatcher CommandDispatcher
	sender     Sender
	logger     *slog.Logger
	locks      senderLocks
}

// NewService wires the message pipeline. A nil gate lets every sender through.
func NewService(gate Gate, router *Router, users UserRegistry, dispatcher CommandDispatcher, sender Sender, logger *slog.Logger) *Service {
	return &Service{
		gate:       gate,
		router:     router,
		users:      users,
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		locks:      senderLocks{m: make(map[string]*senderLock)},
	}
}

// HandleMessage processes one message. Messages from the same sender are
// handled one at a time, in arrival order.
func (s *Service) HandleMessage(ctx context.Context, msg Message) error {
	unlock := s.locks.lock(msg.SenderID)
	defer unlock()

	ctx, span := tracer.Start(ctx, "assistant.HandleMessage")
	defer span.End()

	if s.gate != nil {
		decision, err := s.gate.Check(ctx, msg.SenderID, msg.Text)
		if err != nil {
			return failWithReply(ctx, span, s.sender, s.logger, msg, opAuthGate, err)
		}
		if !decision.Allowed {
			span.SetAttributes(attribute.Bool("gated", true))
			if decision.Reply == "" {
				return nil
			}
			return s.router.reply(ctx, span, msg, decision.Reply)
		}
	}

	name, args, ok := commands.Parse(msg.Text)
	if !ok {
		return s.router.Route(ctx, msg)
	}

	span.SetAttributes(attribute.String("command", commands.Normalize(name)))
	userID, err := s.users.RegisterOrTouch(ctx, msg.SenderID, msg.SenderDisplayName)
	if err != nil {
		return failWithReply(ctx, span, s.sender, s.logger, msg, opRegisterUser, err)
	}
	err = s.dispatcher.Dispatch(ctx, commands.Request{
		UserID:      userID,
		Destination: msg.SenderID,
		Name:        name,
		Args:        args,
	})
	if err != nil {
		return failWithReply(ctx, span, s.sender, s.logger, msg, opRunCommand, err)
	}
	return nil
}

type senderLock struct {
	mu   sync.Mutex
	refs int
}

// senderLocks serialises work per sender and forgets idle senders.
type senderLocks struct {
	mu sync.Mutex
	m  map[string]*senderLock
}

func (l *senderLocks) lock(key string) func() {
	l.mu.Lock()
	sl, ok := l.m[key]
	if !ok {
		sl = &senderLock{}
		l.m[key] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
