package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/assistant"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/auth"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/balance"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/commands"
	goalsrepo "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
	goalsservice "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/service"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/reminders"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/user"
	"github.com/FACorreiaa/finance-chat-assistant/internal/transport/webhook"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/config"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/cron"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/messaging"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	UserRepo           *user.Repository
	CategorizationRepo *categorization.Repository
	TransactionRepo    *transaction.Repository
	BalanceRepo        *balance.Repository
	BudgetRepo         *budget.Repository
	GoalsRepo          goalsrepo.GoalRepository
	RemindersRepo      *reminders.Repository

	// Services
	Sender                *messaging.HTTPSender
	UserService           *user.Service
	CategorizationService *categorization.Service
	TransactionService    *transaction.Service
	BalanceService        *balance.Service
	BudgetService         *budget.Service
	GoalsService          *goalsservice.Service
	RemindersService      *reminders.Service
	AuthGate              *auth.Gate
	Dispatcher            *commands.Dispatcher
	Router                *assistant.Router
	Assistant             *assistant.Service

	// Transport and jobs
	Server    *webhook.Server
	Scheduler *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.initRepositories()

	if err := deps.initServices(); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	deps.initTransport()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func openDatabase(cfg *config.Config, logger *slog.Logger) (*db.DB, error) {
	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN(),
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// initDatabase connects and applies pending migrations.
func (d *Dependencies) initDatabase() error {
	database, err := openDatabase(d.Config, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		d.DB.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

func (d *Dependencies) initRepositories() {
	d.UserRepo = user.NewRepository(d.DB.Pool)
	d.CategorizationRepo = categorization.NewRepository(d.DB.Pool)
	d.TransactionRepo = transaction.NewRepository(d.DB.Pool)
	d.BalanceRepo = balance.NewRepository(d.DB.Pool)
	d.BudgetRepo = budget.NewRepository(d.DB.Pool)
	d.GoalsRepo = goalsrepo.NewPostgresGoalRepository(d.DB.Pool)
	d.RemindersRepo = reminders.NewRepository(d.DB.Pool)

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initServices() error {
	bot := d.Config.Bot
	loc := bot.Location

	d.Sender = messaging.NewHTTPSender(
		d.Config.Messaging.GatewayURL,
		d.Config.Messaging.GatewayToken,
		d.Config.Messaging.RequestTimeout,
		d.Logger,
	)

	d.UserService = user.NewService(d.UserRepo, d.Logger)
	d.CategorizationService = categorization.NewService(d.CategorizationRepo, d.Logger)
	d.TransactionService = transaction.NewService(d.TransactionRepo, d.CategorizationService, bot.Currency, loc, d.Logger)
	d.BalanceService = balance.NewService(d.BalanceRepo, bot.Currency)
	d.BudgetService = budget.NewService(d.BudgetRepo, d.CategorizationService, bot.Currency, loc, d.Logger)
	d.GoalsService = goalsservice.NewService(d.GoalsRepo, bot.Currency, loc, d.Logger)
	d.RemindersService = reminders.NewService(d.RemindersRepo, d.TransactionService, bot.Currency,
		d.Config.Reminders.LookAheadDays, loc, d.Logger)

	credentials, err := auth.ParseCredentials(bot.Credentials)
	if err != nil {
		return fmt.Errorf("invalid BOT_CREDENTIALS: %w", err)
	}
	if len(credentials) == 0 {
		d.Logger.Warn("no bot credentials configured, nobody can log in")
	}
	d.AuthGate = auth.NewGate(auth.Config{
		Keyword:         bot.AuthKeyword,
		Credentials:     credentials,
		AuthorizedUsers: bot.AuthorizedUsers,
		RestrictByPhone: bot.RestrictByPhone,
	}, auth.NewPostgresStore(d.UserRepo), d.Logger)

	d.Dispatcher = commands.NewDispatcher(commands.Deps{
		Balance:    d.BalanceService,
		Ledger:     d.TransactionService,
		Categories: d.CategorizationService,
		Budgets:    d.BudgetService,
		Goals:      d.GoalsService,
		Reminders:  d.RemindersService,
		Sessions:   d.AuthGate,
		Currency:   bot.Currency,
		Location:   loc,
	}, d.Sender, d.Logger)

	d.Router = assistant.NewRouter(d.UserService, d.TransactionService, d.Dispatcher, d.Sender, bot.Currency, loc, d.Logger)
	d.Assistant = assistant.NewService(d.AuthGate, d.Router, d.UserService, d.Dispatcher, d.Sender, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

func (d *Dependencies) initTransport() {
	d.Server = webhook.NewServer(webhook.Config{
		Secret:             d.Config.Messaging.WebhookSecret,
		RateLimitPerSecond: d.Config.Server.RateLimitPerSecond,
		RateLimitBurst:     d.Config.Server.RateLimitBurst,
		AllowedOrigins:     d.Config.Server.AllowedOrigins,
		MetricsEnabled:     d.Config.Observability.MetricsEnabled,
	}, d.Assistant, d.DB.Pool, d.Logger)

	d.Scheduler = cron.NewScheduler(d.Config.Reminders.Schedule, d.Config.Bot.Location,
		d.RemindersService, d.Sender, d.Logger)

	d.Logger.Info("transport initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
