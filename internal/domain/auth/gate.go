// Package auth gates the chat behind a keyword and a login/password pair.
// A sender walks anonymous -> awaiting_login -> awaiting_password ->
// authenticated; any wrong answer sends them back to anonymous.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"
)

// State is the position of a sender in the login flow.
type State string

const (
	StateAnonymous        State = "anonymous"
	StateAwaitingLogin    State = "awaiting_login"
	StateAwaitingPassword State = "awaiting_password"
	StateAuthenticated    State = "authenticated"
)

// DefaultKeyword starts the login flow when none is configured.
const DefaultKeyword = "creatinex"

const (
	LoginPromptText    = "🔐 *Autenticação*\n\nDigite seu login:"
	PasswordPromptText = "Agora digite sua senha:"
	LoginFailedText    = "❌ Login ou senha inválidos.\n\nEnvie a palavra-chave para tentar novamente."
	UnauthorizedText   = "⛔ Este número não está autorizado a usar o assistente."
	WelcomeText        = "🤖 *Bem-vindo ao seu Assistente Financeiro Pessoal!*\n\n" +
		"Aqui você pode:\n\n" +
		"💰 *Controlar Gastos e Receitas*\n" +
		"• Registrar despesas e receitas\n" +
		"• Categorizar suas transações\n" +
		"• Buscar e exportar lançamentos\n\n" +
		"📊 *Acompanhar suas Finanças*\n" +
		"• Ver relatórios detalhados\n" +
		"• Gráficos de gastos\n" +
		"• Análise por categorias\n\n" +
		"🎯 *Planejar seu Futuro*\n" +
		"• Definir metas financeiras\n" +
		"• Controlar orçamentos\n" +
		"• Receber alertas\n\n" +
		"⏰ *Lembretes Automáticos*\n" +
		"• Contas a pagar\n" +
		"• Vencimentos\n" +
		"• Cobranças\n\n" +
		"*Como usar:*\n" +
		"1️⃣ Fale naturalmente comigo:\n" +
		"• \"Comprei pão por 5 reais\"\n" +
		"• \"Gastei 150 com conta de luz\"\n" +
		"• \"Recebi 2500 de salário\"\n" +
		"• \"Quanto tenho de saldo?\"\n\n" +
		"2️⃣ Ou use comandos como:\n" +
		"• /saldo - Ver saldo atual\n" +
		"• /relatorio - Relatório mensal\n" +
		"• /metas - Suas metas financeiras\n\n" +
		"Digite \"ajuda\" para ver todas as funções disponíveis!"
)

var ErrInvalidCredential = errors.New("credential must be login:bcrypt-hash")

var authEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_events_total",
		Help: "Login flow events by outcome",
	},
	[]string{"event"},
)

// Session is what the store keeps per sender.
type Session struct {
	State State
	Login string
}

// SessionStore keeps sessions keyed by sender ID.
type SessionStore interface {
	Get(ctx context.Context, senderID string) (Session, error)
	Set(ctx context.Context, senderID string, s Session) error
}

// Credentials maps logins to bcrypt hashes.
type Credentials map[string][]byte

// ParseCredentials reads "login:hash" entries.
func ParseCredentials(entries []string) (Credentials, error) {
	out := make(Credentials, len(entries))
	for _, e := range entries {
		login, hash, ok := strings.Cut(e, ":")
		login = strings.TrimSpace(login)
		hash = strings.TrimSpace(hash)
		if !ok || login == "" || hash == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCredential, login)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCredential, login, err)
		}
		out[login] = []byte(hash)
	}
	return out, nil
}

// Config controls the gate.
type Config struct {
	Keyword         string
	Credentials     Credentials
	AuthorizedUsers []string
	RestrictByPhone bool
}

// Decision says whether a message may go on to the assistant. Reply, when
// set, is sent back to the sender.
type Decision struct {
	Allowed bool
	Reply   string
}

// Gate runs the login state machine.
type Gate struct {
	cfg    Config
	store  SessionStore
	logger *slog.Logger
}

// NewGate creates a gate over store.
func NewGate(cfg Config, store SessionStore, logger *slog.Logger) *Gate {
	cfg.Keyword = strings.ToLower(strings.TrimSpace(cfg.Keyword))
	if cfg.Keyword == "" {
		cfg.Keyword = DefaultKeyword
	}
	return &Gate{cfg: cfg, store: store, logger: logger}
}

// Check advances the sender's session with text and decides whether text is
// an assistant message. Strangers that do not send the keyword are ignored.
func (g *Gate) Check(ctx context.Context, senderID, text string) (Decision, error) {
	if g.cfg.RestrictByPhone && !slices.Contains(g.cfg.AuthorizedUsers, senderID) {
		authEvents.WithLabelValues("refused").Inc()
		return Decision{Reply: UnauthorizedText}, nil
	}

	s, err := g.store.Get(ctx, senderID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to load session: %w", err)
	}
	text = strings.TrimSpace(text)

	switch s.State {
	case StateAuthenticated:
		return Decision{Allowed: true}, nil

	case StateAwaitingLogin:
		if _, ok := g.cfg.Credentials[text]; !ok {
			return g.fail(ctx, senderID, "unknown login")
		}
		if err := g.store.Set(ctx, senderID, Session{State: StateAwaitingPassword, Login: text}); err != nil {
			return Decision{}, fmt.Errorf("failed to save session: %w", err)
		}
		return Decision{Reply: PasswordPromptText}, nil

	case StateAwaitingPassword:
		hash, ok := g.cfg.Credentials[s.Login]
		if !ok || bcrypt.CompareHashAndPassword(hash, []byte(text)) != nil {
			return g.fail(ctx, senderID, "wrong password")
		}
		if err := g.store.Set(ctx, senderID, Session{State: StateAuthenticated, Login: s.Login}); err != nil {
			return Decision{}, fmt.Errorf("failed to save session: %w", err)
		}
		authEvents.WithLabelValues("login").Inc()
		g.logger.InfoContext(ctx, "sender authenticated",
			slog.String("sender_id", senderID),
			slog.String("login", s.Login))
		return Decision{Reply: WelcomeText}, nil

	default:
		if strings.ToLower(text) != g.cfg.Keyword {
			return Decision{}, nil
		}
		if err := g.store.Set(ctx, senderID, Session{State: StateAwaitingLogin}); err != nil {
			return Decision{}, fmt.Errorf("failed to save session: %w", err)
		}
		authEvents.WithLabelValues("keyword").Inc()
		return Decision{Reply: LoginPromptText}, nil
	}
}

func (g *Gate) fail(ctx context.Context, senderID, reason string) (Decision, error) {
	if err := g.store.Set(ctx, senderID, Session{State: StateAnonymous}); err != nil {
		return Decision{}, fmt.Errorf("failed to reset session: %w", err)
	}
	authEvents.WithLabelValues("failed").Inc()
	g.logger.WarnContext(ctx, "login failed",
		slog.String("sender_id", senderID),
		slog.String("reason", reason))
	return Decision{Reply: LoginFailedText}, nil
}

// Logout sends the sender back to anonymous.
func (g *Gate) Logout(ctx context.Context, senderID string) error {
	if err := g.store.Set(ctx, senderID, Session{State: StateAnonymous}); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	authEvents.WithLabelValues("logout").Inc()
	return nil
}
