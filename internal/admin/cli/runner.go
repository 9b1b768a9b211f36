// Package cli реализует консольную админку: разбор команд go-flags и
// сборку клиента API, хранилища токенов и сценариев из конфигурации.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/adapters/credentials"
	"albuhara/internal/admin/app"
	"albuhara/internal/admin/config"
	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/api"
	credport "albuhara/internal/admin/ports/credentials"
	"albuhara/internal/admin/resilience"
	"albuhara/pkg/db/redis"
	"albuhara/pkg/logger"
)

const (
	breakerName = "admin-api"

	MsgSessionExpired = "session expired, run `admin login`"

	LogEnvironmentReady = "admin environment ready"
	LogCloseFailed      = "failed to release resource"

	errCtxLoadConfig  = "loading configuration"
	errCtxInitLogger  = "initializing logger"
	errCtxOpenStore   = "opening credentials store"
	errCtxBuildClient = "building api client"
)

// Options - глобальные флаги и дерево команд.
type Options struct {
	Config  string `short:"c" long:"config" env:"ADMIN_CONFIG_PATH" description:"YAML configuration file"`
	Profile string `short:"p" long:"profile" description:"credentials profile, overrides ADMIN_PROFILE"`
	Verbose bool   `short:"v" long:"verbose" description:"log at debug level"`

	Login      loginCommand      `command:"login" description:"Obtain a token pair and store it"`
	Logout     logoutCommand     `command:"logout" description:"Remove stored tokens"`
	Status     statusCommand     `command:"status" description:"Show the stored session"`
	Summary    summaryCommand    `command:"summary" description:"Count categories and menu items"`
	Categories categoriesCommand `command:"categories" description:"Manage menu categories"`
	Items      itemsCommand      `command:"items" description:"Manage menu items"`
	Decor      decorCommand      `command:"decor" description:"Manage decor images"`
	Slides     slidesCommand     `command:"slides" description:"Manage home page sliders"`
	About      aboutCommand      `command:"about" description:"Manage the about section images"`
	Contact    contactCommand    `command:"contact" description:"Manage contact information"`
}

// Runner выполняет одну команду. Doer и Store подменяют транспорт и
// хранилище из конфигурации.
type Runner struct {
	Out   io.Writer
	Err   io.Writer
	Doer  apiclient.Doer
	Store credport.Store
	Now   func() time.Time

	ctx     context.Context
	opts    Options
	env     *environment
	closers []func() error
}

type environment struct {
	cfg     *config.Config
	session api.SessionUseCase
	catalog api.CatalogUseCase
}

// action дает командам доступ к Runner.
type action struct {
	r *Runner
}

// Run разбирает args и выполняет выбранную команду.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Err == nil {
		r.Err = os.Stderr
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	r.ctx = ctx
	r.opts = r.commands()
	defer r.close()

	parser := flags.NewParser(&r.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "admin"
	_, err := parser.ParseArgs(args)
	return err
}

func (r *Runner) commands() Options {
	a := action{r: r}
	return Options{
		Login:   loginCommand{action: a},
		Logout:  logoutCommand{action: a},
		Status:  statusCommand{action: a},
		Summary: summaryCommand{action: a},
		Categories: categoriesCommand{
			List:   categoriesListCommand{action: a},
			Create: categoriesCreateCommand{action: a},
			Update: categoriesUpdateCommand{action: a},
			Delete: categoriesDeleteCommand{action: a},
		},
		Items: itemsCommand{
			List:   itemsListCommand{action: a},
			Create: itemsCreateCommand{action: a},
			Update: itemsUpdateCommand{action: a},
			Delete: itemsDeleteCommand{action: a},
		},
		Decor: decorCommand{
			List: decorListCommand{action: a},
			Set:  decorSetCommand{action: a},
		},
		Slides: slidesCommand{
			List:   slidesListCommand{action: a},
			Add:    slidesAddCommand{action: a},
			Delete: slidesDeleteCommand{action: a},
		},
		About: aboutCommand{
			List: aboutListCommand{action: a},
			Set:  aboutSetCommand{action: a},
		},
		Contact: contactCommand{
			List:   contactListCommand{action: a},
			Update: contactUpdateCommand{action: a},
		},
	}
}

// environment собирает зависимости при первом обращении команды.
func (r *Runner) environment() (*environment, error) {
	if r.env != nil {
		return r.env, nil
	}

	cfg, err := config.Load(r.ctx, r.opts.Config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadConfig, err)
	}
	if r.opts.Profile != "" {
		cfg.Credentials.Profile = r.opts.Profile
	}

	level := cfg.Logging.Level
	if r.opts.Verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	store, err := r.openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxOpenStore, err)
	}

	options := []apiclient.Option{
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithRefreshPath(cfg.API.RefreshPath),
		apiclient.WithSessionInvalidator(apiclient.SessionInvalidatorFunc(r.sessionExpired)),
	}
	if r.Doer != nil {
		options = append(options, apiclient.WithDoer(r.Doer))
	}
	if limiter := cfg.API.Limiter(); limiter != nil {
		options = append(options, apiclient.WithRateLimiter(limiter))
	}
	if cfg.Breaker.Enabled {
		cb := resilience.NewCircuitBreaker(breakerName, cfg.Breaker.CircuitBreakerConfig())
		options = append(options, apiclient.WithCircuitBreaker(cb))
	}

	client, err := apiclient.New(cfg.API.BaseURL, store, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBuildClient, err)
	}
	tokens := apiclient.NewTokenEndpoint(client.Doer(), cfg.API.TokenURL(), cfg.API.RefreshURL())

	r.env = &environment{
		cfg:     cfg,
		session: app.NewSessionUseCase(tokens, store),
		catalog: app.NewCatalogUseCase(client),
	}
	log.Debug(r.ctx, LogEnvironmentReady,
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("credentials_backend", cfg.Credentials.Backend),
		zap.String("profile", cfg.Credentials.Profile))
	return r.env, nil
}

func (r *Runner) openStore(cfg *config.Config) (credport.Store, error) {
	if r.Store != nil {
		return r.Store, nil
	}

	switch cfg.Credentials.Backend {
	case config.BackendMemory:
		return credentials.NewMemoryStore(entities.Credentials{}), nil
	case config.BackendRedis:
		client, err := redis.NewClient(r.ctx, cfg.Redis.ClientConfig())
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, client.Close)
		return credentials.NewRedisStore(client.RawClient(), cfg.Credentials.ResolveRedisKey(), cfg.Credentials.RedisTTL), nil
	default:
		path, err := cfg.Credentials.ResolveFilePath()
		if err != nil {
			return nil, err
		}
		return credentials.NewFileStore(path), nil
	}
}

func (r *Runner) sessionExpired(_ context.Context, _ error) {
	_, _ = fmt.Fprintln(r.Err, MsgSessionExpired)
}

func (r *Runner) close() {
	for _, closeFn := range r.closers {
		if err := closeFn(); err != nil {
			logger.Log(r.ctx).Warn(r.ctx, LogCloseFailed, zap.Error(err))
		}
	}
	r.closers = nil
}

func (a action) ctx() context.Context {
	return a.r.ctx
}

func (a action) session() (api.SessionUseCase, error) {
	env, err := a.r.environment()
	if err != nil {
		return nil, err
	}
	return env.session, nil
}

func (a action) catalog() (api.CatalogUseCase, error) {
	env, err := a.r.environment()
	if err != nil {
		return nil, err
	}
	return env.catalog, nil
}

func (a action) printJSON(v any) error {
	enc := json.NewEncoder(a.r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a action) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.r.Out, format, args...)
	return err
}

// IsHelp сообщает, что err - запрос справки, а не ошибка.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}
