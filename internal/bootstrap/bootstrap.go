package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "climblog/internal/modules/analytics/adapter/in"
	analyticsusecase "climblog/internal/modules/analytics/usecase"
	authinadapter "climblog/internal/modules/auth/adapter/in"
	authoutadapter "climblog/internal/modules/auth/adapter/out"
	authservice "climblog/internal/modules/auth/service"
	authusecase "climblog/internal/modules/auth/usecase"
	gyminadapter "climblog/internal/modules/gym/adapter/in"
	gymoutadapter "climblog/internal/modules/gym/adapter/out"
	gymservice "climblog/internal/modules/gym/service"
	gymusecase "climblog/internal/modules/gym/usecase"
	sessioninadapter "climblog/internal/modules/session/adapter/in"
	sessionoutadapter "climblog/internal/modules/session/adapter/out"
	sessionservice "climblog/internal/modules/session/service"
	sessionusecase "climblog/internal/modules/session/usecase"
	trackerusecase "climblog/internal/modules/tracker/usecase"
	"climblog/internal/platform/clock"
	"climblog/internal/platform/config"
	"climblog/internal/platform/id"
	"climblog/internal/platform/logging"
	"climblog/internal/platform/restclient"
	uiapp "climblog/internal/ui/app"
)

type App struct {
	AuthCLI      authinadapter.CLIHandler
	GymCLI       gyminadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	Controller   *trackerusecase.Controller
	Logger       *slog.Logger

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger, logFile, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	app := &App{Logger: logger, closers: []io.Closer{logFile}}

	clk := clock.System{}
	client := restclient.New(cfg.API.BaseURL, cfg.API.Timeout, id.UUID{}, logger)

	credentials, err := authoutadapter.NewSQLiteCredentialStore(cfg.DBPath, clk)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	app.closers = append(app.closers, credentials)

	authUC := authusecase.NewInteractor(authservice.NewAuthService(
		clk,
		authoutadapter.NewHTTPAuthenticator(client),
		credentials,
		logger,
	))
	gymUC := gymusecase.NewInteractor(gymservice.NewGymService(
		gymoutadapter.NewHTTPCatalog(client),
		logger,
	))
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		sessionoutadapter.NewHTTPGateway(client),
		sessionoutadapter.NewVaultSessionStore(),
		logger,
	))
	analyticsUC := analyticsusecase.NewInteractor()

	app.AuthCLI = authinadapter.NewCLIHandler(authUC)
	app.GymCLI = gyminadapter.NewCLIHandler(gymUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.AnalyticsCLI = analyticsinadapter.NewCLIHandler(analyticsUC)
	app.Controller = trackerusecase.NewController(authUC, gymUC, sessionUC, analyticsUC, logger)

	logger.Debug("app ready", "api", cfg.API.BaseURL, "db", cfg.DBPath)
	return app, nil
}

// Close releases the credential database and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Controller)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
