package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/examdesk/internal/app/handlers/http/admin_login_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/admin_verify_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/questions_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/result_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/results_handler"
	httpStats "github.com/IT-Nick/examdesk/internal/app/handlers/http/stats_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/users_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/http/webhook_handler"
	"github.com/IT-Nick/examdesk/internal/app/handlers/telegram/start_handler"
	botStats "github.com/IT-Nick/examdesk/internal/app/handlers/telegram/stats_handler"
	"github.com/IT-Nick/examdesk/internal/app/middleware"
	adminsRepo "github.com/IT-Nick/examdesk/internal/domain/admins/repository"
	"github.com/IT-Nick/examdesk/internal/domain/auth/challenge"
	authService "github.com/IT-Nick/examdesk/internal/domain/auth/service"
	"github.com/IT-Nick/examdesk/internal/domain/auth/session"
	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/domain/questions/bank"
	questionsService "github.com/IT-Nick/examdesk/internal/domain/questions/service"
	resultsService "github.com/IT-Nick/examdesk/internal/domain/results/service"
	testTakersService "github.com/IT-Nick/examdesk/internal/domain/testtakers/service"
	"github.com/IT-Nick/examdesk/internal/infra/config"
	"github.com/IT-Nick/examdesk/internal/infra/export"
	"github.com/IT-Nick/examdesk/internal/infra/notify"
	"github.com/IT-Nick/examdesk/internal/infra/timer"
	"github.com/IT-Nick/examdesk/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Services struct {
	authService      *authService.AuthService
	testTakerService *testTakersService.TestTakerService
	questionService  *questionsService.QuestionService
	resultService    *resultsService.ResultService
}

type App struct {
	config   *config.Config
	logger   *log.Logger
	bot      *telebot.Bot
	store    storage.Gateway
	admins   *adminsRepo.AdminRepository
	sessions *session.Issuer
	// challenges ожидающие коды входа, вычищаются фоновым Sweeper
	challenges *challenge.Manager
	notifier   notify.Notifier
	server     *http.Server

	botSettings []func(*telebot.Settings)

	Services
}

// NewApp читает конфигурацию из configPath и собирает приложение
func NewApp(ctx context.Context, configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	store, err := OpenStorage(ctx, configImpl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app, err := NewWithStorage(configImpl, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if err := app.SeedQuestions(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// SeedQuestions загружает банк вопросов из storage.seed_questions, если он задан
func (app *App) SeedQuestions(ctx context.Context) error {
	if app.config.Storage.SeedQuestions == "" {
		return nil
	}

	questions, err := bank.LoadFile(app.config.Storage.SeedQuestions)
	if err != nil {
		return err
	}
	added, err := app.questionService.Seed(ctx, questions)
	if err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}
	app.logger.Printf("Question bank %s: %d questions added", app.config.Storage.SeedQuestions, added)
	return nil
}

// Option настраивает App
type Option func(*App)

// WithLogger подменяет логгер приложения
func WithLogger(logger *log.Logger) Option {
	return func(app *App) { app.logger = logger }
}

// WithBotSettings дополняет настройки бота перед его созданием
func WithBotSettings(apply func(*telebot.Settings)) Option {
	return func(app *App) { app.botSettings = append(app.botSettings, apply) }
}

// NewWithStorage собирает приложение поверх готового хранилища
func NewWithStorage(cfg *config.Config, store storage.Gateway, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
		logger: log.New(os.Stdout, "[examdesk] ", log.LstdFlags),
		store:  store,
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}
	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() error {
	creds := make([]adminsRepo.Credentials, 0, len(app.config.Auth.Admins))
	for _, a := range app.config.Auth.Admins {
		creds = append(creds, adminsRepo.Credentials{
			Username:     a.Username,
			Password:     a.Password,
			PasswordHash: a.PasswordHash,
			TelegramID:   a.TelegramID,
		})
	}
	admins, err := adminsRepo.NewAdminRepository(creds)
	if err != nil {
		return fmt.Errorf("failed to load administrators: %w", err)
	}
	app.admins = admins

	sessions, err := session.NewIssuer(app.config.Auth.JWTSecret, session.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create session issuer: %w", err)
	}
	app.sessions = sessions

	if app.config.TelegramBot.Token != "" {
		settings := telebot.Settings{
			Token:  app.config.TelegramBot.Token,
			Poller: &telebot.LongPoller{Timeout: app.config.TelegramBot.PollInterval},
		}
		for _, apply := range app.botSettings {
			apply(&settings)
		}
		bot, err := telebot.NewBot(settings)
		if err != nil {
			return fmt.Errorf("telebot.NewBot: %w", err)
		}
		app.bot = bot
		app.notifier = notify.NewTelegramSender(bot)
	} else {
		app.logger.Println("Telegram token is not set, notifications go to the log")
		app.notifier = notify.NewLogSender(app.logger)
	}

	app.challenges = challenge.NewManager(challenge.CodeTTL)
	app.authService = authService.NewAuthService(
		admins,
		app.challenges,
		sessions,
		app.notifier,
		app.config.TelegramBot.ChatID,
		app.logger,
	)
	app.testTakerService = testTakersService.NewTestTakerService(app.store)
	app.questionService = questionsService.NewQuestionService(app.store)
	app.resultService = resultsService.NewResultService(app.store, app.notifier, app.config.TelegramBot.ChatID, app.logger)

	if app.bot != nil {
		app.bootstrapHandlersTelegram()
	}
	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover())
	if app.config.TelegramBot.Debug {
		app.bot.Use(middleware.Logger(app.logger))
	}

	app.bot.Handle("/start", start_handler.NewStartHandler(app.admins).GetHandlerFunc())
	app.bot.Handle("/stats",
		botStats.NewStatsHandler(app.testTakerService, app.resultService).GetHandlerFunc(),
		middleware.AdminOnly(app.admins))
}

// Router собирает маршруты HTTP API
func (app *App) Router() http.Handler {
	r := mux.NewRouter()
	admin := middleware.RequireAdmin(app.sessions, app.config.RequiresToken())

	r.Handle("/health", health_handler.NewHealthHandler(app.config.Storage.Type)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/admin/login", admin_login_handler.NewAdminLoginHandler(app.authService)).Methods(http.MethodPost)
	api.Handle("/admin/verify", admin_verify_handler.NewAdminVerifyHandler(app.authService)).Methods(http.MethodPost)

	api.Handle("/users", users_handler.NewRegisterHandler(app.testTakerService)).Methods(http.MethodPost)
	api.Handle("/users", admin(users_handler.NewListHandler(app.testTakerService))).Methods(http.MethodGet)
	api.Handle("/users/{id}", admin(users_handler.NewDeleteHandler(app.testTakerService))).Methods(http.MethodDelete)

	api.Handle("/questions", questions_handler.NewListHandler(app.questionService, "")).Methods(http.MethodGet)
	api.Handle("/questions", admin(questions_handler.NewCreateHandler(app.questionService))).Methods(http.MethodPost)
	api.Handle("/questions/{id}", admin(questions_handler.NewDeleteHandler(app.questionService))).Methods(http.MethodDelete)
	api.Handle("/exam/questions", questions_handler.NewListHandler(app.questionService, model.VariantExam)).Methods(http.MethodGet)

	api.Handle("/result", result_handler.NewResultHandler(app.resultService)).Methods(http.MethodPost)
	api.Handle("/results", admin(results_handler.NewListHandler(app.resultService))).Methods(http.MethodGet)
	api.Handle("/results/download", admin(results_handler.NewDownloadHandler(app.resultService,
		export.PDFOptions{FontDir: app.config.Export.FontDir}))).Methods(http.MethodGet)

	api.Handle("/stats/users", admin(httpStats.NewUsersStatsHandler(app.resultService))).Methods(http.MethodGet)
	api.Handle("/stats/results", admin(httpStats.NewResultsStatsHandler(app.resultService))).Methods(http.MethodGet)

	if app.bot != nil {
		r.Handle("/bot"+app.config.TelegramBot.Token, webhook_handler.NewWebhookHandler(app.bot)).Methods(http.MethodPost)
	}

	var h http.Handler = r
	h = handlers.CORS(
		handlers.AllowedOrigins(app.config.Server.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(app.logger),
		handlers.PrintRecoveryStack(app.config.TelegramBot.Debug),
	)(h)
	return handlers.LoggingHandler(os.Stdout, h)
}

// ListenAndServeTelegram запускает получение обновлений в выбранном режиме
func (app *App) ListenAndServeTelegram() error {
	if app.bot == nil {
		return nil
	}

	switch app.config.TelegramBot.Mode {
	case config.BotModeWebhook:
		endpoint := strings.TrimRight(app.config.Server.PublicURL, "/") + "/bot" + app.config.TelegramBot.Token
		if err := app.bot.SetWebhook(&telebot.Webhook{Endpoint: &telebot.WebhookEndpoint{PublicURL: endpoint}}); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		app.logger.Printf("Telegram webhook registered at %s/bot<token>", strings.TrimRight(app.config.Server.PublicURL, "/"))
	case config.BotModePolling:
		// Вебхук и long polling взаимоисключающие в Bot API
		if err := app.bot.RemoveWebhook(); err != nil {
			return fmt.Errorf("failed to remove webhook: %w", err)
		}
		go app.bot.Start()
		app.logger.Println("Telegram bot started in polling mode")
	}
	return nil
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:              app.config.Addr(),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Printf("HTTP server listening on %s", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe запускает бота и HTTP сервер и останавливает их при отмене ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}
	go timer.NewSweeper("login-codes", challenge.CodeTTL, app.challenges.Purge, app.logger).Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServeHTTP()
	}()

	select {
	case err := <-errCh:
		app.Close()
		if err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Printf("HTTP server shutdown: %v", err)
	}
	app.Close()
	return nil
}

// Close останавливает бота, дожидается уведомлений и закрывает хранилище
func (app *App) Close() {
	if app.bot != nil && app.config.TelegramBot.Mode == config.BotModePolling {
		app.bot.Stop()
	}
	app.resultService.Wait()
	if err := app.store.Close(); err != nil {
		app.logger.Printf("Failed to close storage: %v", err)
	}
}
