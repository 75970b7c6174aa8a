package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/filter"
	"github.com/umputun/redditbot/pkg/interaction"
	"github.com/umputun/redditbot/pkg/llm"
	"github.com/umputun/redditbot/pkg/reddit"
	"github.com/umputun/redditbot/pkg/repository"
	"github.com/umputun/redditbot/pkg/service"
	"github.com/umputun/redditbot/pkg/tools"
	"github.com/umputun/redditbot/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" description:"configuration file"`
	Listen   string `short:"l" long:"listen" env:"LISTEN" description:"HTTP listen address, overrides config"`
	NoHTTP   bool   `long:"no-http" env:"NO_HTTP" description:"disable the HTTP API"`
	NoStdio  bool   `long:"no-stdio" env:"NO_STDIO" description:"disable the MCP stdio transport"`
	ReadOnly bool   `long:"read-only" description:"use app-only access, write tools fail"`
	BotID    string `short:"b" long:"bot-id" env:"BOT_ID" description:"stored bot driven by the bot-control tools"`
	NoDelay  bool   `long:"no-delay" description:"disable pauses in bot-control runs"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] can't load .env: %v", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	// stdout belongs to the MCP transport, logs go to stderr
	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting reddit tool server version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdin, os.Stdout)
	cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[ERROR] tool server failed: %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// serverConfig implements server.ConfigProvider
type serverConfig struct {
	listen  string
	timeout time.Duration
}

func (c serverConfig) GetServerConfig() (listen string, timeout time.Duration) {
	return c.listen, c.timeout
}

func run(ctx context.Context, opts Opts, stdin io.Reader, stdout io.Writer) error {
	if opts.NoHTTP && opts.NoStdio {
		return errors.New("both transports are disabled")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := reddit.New(ctx, reddit.Config{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		RefreshToken: cfg.Reddit.RefreshToken,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		UserAgent:    cfg.Reddit.UserAgent,
		ReadOnly:     opts.ReadOnly,
		Timeout:      cfg.Reddit.Timeout,
		TokenURL:     cfg.Reddit.TokenURL,
		APIURL:       cfg.Reddit.APIURL,
		PublicURL:    cfg.Reddit.PublicURL,
	})
	log.Printf("[INFO] reddit access mode %s", client.Mode())

	session := tools.NewSession(client, tools.SessionParams{
		HistorySize: cfg.Tools.HistorySize,
		CacheTTL:    cfg.Tools.CacheTTL,
		CacheSize:   cfg.Tools.CacheSize,
	})
	svc := tools.NewService(session, cfg.Bot.InteractionLog)
	if opts.BotID != "" {
		control, closeControl, err := newBotControl(ctx, cfg, opts, client)
		if err != nil {
			return err
		}
		defer closeControl()
		svc.WithAutomation(control)
		log.Printf("[INFO] bot-control tools enabled for bot %s", opts.BotID)
	}
	registry := tools.NewRegistry(svc.Tools()...)

	listen := cfg.Server.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}

	g, ctx := errgroup.WithContext(ctx)
	if !opts.NoHTTP {
		srv := server.New(serverConfig{listen: listen, timeout: cfg.Server.Timeout}, registry, revision, opts.Debug)
		g.Go(func() error { return srv.Run(ctx) })
	}
	if !opts.NoStdio {
		stdio := mcpserver.NewStdioServer(tools.NewMCPServer(registry, "reddit-tools", revision))
		stdio.SetErrorLogger(log.New(os.Stderr, "[MCP] ", log.LstdFlags))
		g.Go(func() error {
			if err := stdio.Listen(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mcp stdio: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// newBotControl opens the bot store and the interaction log for the bot-control tools
func newBotControl(ctx context.Context, cfg *config.Config, opts Opts, client *reddit.Client) (*botControl, func(), error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	journal, err := interaction.Open(cfg.Bot.InteractionLog)
	if err != nil {
		_ = repos.Close()
		return nil, nil, fmt.Errorf("failed to open interaction log: %w", err)
	}

	bots := service.NewBotService(repos.Bot, repos.History)
	if _, err := bots.Bot(ctx, opts.BotID, service.Caps{}); err != nil {
		_ = repos.Close()
		return nil, nil, fmt.Errorf("failed to load bot: %w", err)
	}

	control := &botControl{
		botID:     opts.BotID,
		bots:      bots,
		client:    client,
		generator: llm.NewGenerator(cfg.LLM, filter.New()),
		journal:   journal,
		runner:    cfg.Bot,
		noDelay:   opts.NoDelay,
	}
	return control, func() { _ = repos.Close() }, nil
}

func setupLog(dbg, noColor bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}
	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, k := range []string{"REDDIT_CLIENT_SECRET", "REDDIT_REFRESH_TOKEN", "REDDIT_PASSWORD"} {
		if v := os.Getenv(k); v != "" {
			secrets = append(secrets, v)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
