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
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/redditbot/pkg/bot"
	"github.com/umputun/redditbot/pkg/config"
	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/filter"
	"github.com/umputun/redditbot/pkg/interaction"
	"github.com/umputun/redditbot/pkg/llm"
	"github.com/umputun/redditbot/pkg/reddit"
	"github.com/umputun/redditbot/pkg/repository"
	"github.com/umputun/redditbot/pkg/scheduler"
	"github.com/umputun/redditbot/pkg/selector"
	"github.com/umputun/redditbot/pkg/service"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file"`
	BotID  string `long:"bot-id" env:"BOT_ID" description:"bot id to run"`
	All    bool   `long:"all" description:"run all active bots"`

	DryRun    bool   `long:"dry-run" description:"simulate replies and votes, no writes to reddit"`
	ReadOnly  bool   `long:"read-only" description:"use app-only access, replies and votes are simulated"`
	Subreddit string `long:"subreddit" description:"process only this subreddit"`
	Limit     int    `long:"limit" description:"posts per subreddit"`
	NoDelay   bool   `long:"no-delay" description:"disable pauses between actions"`
	Schedule  bool   `long:"schedule" description:"run repeatedly on the configured cron schedule"`

	MaxSubreddits int `long:"max-subreddits" description:"subreddits per run, the bot row value wins"`
	MaxReplies    int `long:"max-replies" description:"replies per run, the bot row value wins"`
	MaxUpvotes    int `long:"max-upvotes" description:"upvotes per run, the bot row value wins"`

	// Common options
	LogFile string `long:"log-file" env:"LOG_FILE" description:"also write logs to this file"`
	Debug   bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool   `short:"V" long:"version" description:"show version info"`
	NoColor bool   `long:"no-color" env:"NO_COLOR" description:"disable color output"`
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

	closeLog, err := setupLog(opts.Debug, opts.NoColor, opts.LogFile, secrets()...)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	defer closeLog()

	log.Printf("[INFO] starting redditbot version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, opts)
	cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[ERROR] %v", err)
		closeLog()
		os.Exit(1)
	}
	log.Print("[INFO] done")
}

func run(ctx context.Context, opts Opts) error {
	if opts.BotID == "" && !opts.All {
		return errors.New("bot id is required, use --bot-id or --all")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	maskSecrets(configSecrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	journal, err := interaction.Open(cfg.Bot.InteractionLog)
	if err != nil {
		return fmt.Errorf("failed to open interaction log: %w", err)
	}

	a := &app{
		opts:      opts,
		cfg:       cfg,
		bots:      service.NewBotService(repos.Bot, repos.History),
		journal:   journal,
		generator: llm.NewGenerator(cfg.LLM, filter.New()),
	}

	if !opts.Schedule {
		return a.pass(ctx)
	}
	sched, err := scheduler.New(cfg.Bot.Schedule, a.pass)
	if err != nil {
		return err
	}
	return sched.Run(ctx)
}

// app holds shared dependencies of bot runs
type app struct {
	opts      Opts
	cfg       *config.Config
	bots      *service.BotService
	journal   *interaction.Log
	generator *llm.Generator
}

// pass runs the selected bot or every active one
func (a *app) pass(ctx context.Context) error {
	if !a.opts.All {
		return a.runBot(ctx, a.opts.BotID)
	}
	ids, err := a.bots.ActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active bots: %w", err)
	}
	return bot.RunAll(ctx, ids, a.runBot)
}

// runBot loads the bot, connects to reddit and makes a single run
func (a *app) runBot(ctx context.Context, id string) error {
	caps := service.Caps{MaxSubs: a.opts.MaxSubreddits, MaxReplies: a.opts.MaxReplies, MaxUpvotes: a.opts.MaxUpvotes}
	botCfg, err := a.bots.Bot(ctx, id, caps)
	if err != nil {
		return fmt.Errorf("failed to load bot: %w", err)
	}
	maskSecrets(botCfg.Credentials.ClientSecret, botCfg.Credentials.RefreshToken)

	client, readOnly, err := connect(ctx, redditConfig(a.cfg.Reddit, botCfg.Credentials, a.opts.ReadOnly), a.opts.DryRun)
	if err != nil {
		return err
	}

	discoveryDelay := a.cfg.Bot.DiscoveryDelay
	if a.opts.NoDelay {
		discoveryDelay = 0
	}
	sel := selector.New(selector.Params{
		Store:          a.bots,
		Searcher:       client,
		RecentDays:     a.cfg.Bot.RecentDays,
		DiscoveryDelay: discoveryDelay,
	})

	runner := bot.New(bot.Params{
		Bot:       botCfg,
		Reddit:    client,
		Generator: a.generator,
		Selector:  sel,
		History:   a.bots,
		Journal:   a.journal,
		Config:    a.cfg.Bot,
		DryRun:    a.opts.DryRun,
		ReadOnly:  readOnly,
		Subreddit: a.opts.Subreddit,
		PostLimit: a.opts.Limit,
		NoDelay:   a.opts.NoDelay,
	})

	log.Printf("[INFO] bot %s: max subreddits %d, max replies %d, max upvotes %d, dry-run %v, read-only %v",
		botCfg.ID, botCfg.MaxSubs, botCfg.MaxReplies, botCfg.MaxUpvotes, a.opts.DryRun, readOnly)
	stats, err := runner.Run(ctx)
	log.Printf("[INFO] bot %s finished, %s", botCfg.ID, stats)
	return err
}

// connect makes the reddit client and verifies credentials. A user context that can't be verified
// falls back to read-only access. Without any credentials only dry-run is possible.
func connect(ctx context.Context, rcfg reddit.Config, dryRun bool) (client *reddit.Client, readOnly bool, err error) {
	client = reddit.New(ctx, rcfg)
	switch client.Mode() {
	case reddit.AuthAnonymous:
		if !dryRun {
			return nil, false, errors.New("reddit credentials are required, set client id and secret or use --dry-run")
		}
		log.Printf("[INFO] no reddit credentials, using public read-only access")
		return client, true, nil
	case reddit.AuthAppOnly:
		log.Printf("[INFO] using app-only read-only access")
		return client, true, nil
	}

	name, err := client.Me(ctx)
	if err != nil {
		log.Printf("[WARN] reddit authentication failed, falling back to read-only mode: %v", err)
		rcfg.ReadOnly = true
		return reddit.New(ctx, rcfg), true, nil
	}
	log.Printf("[INFO] authenticated as u/%s (%s)", name, client.Mode())
	return client, false, nil
}

// redditConfig merges process-wide credentials with the bot's own, bot values win
func redditConfig(rc config.RedditConfig, creds domain.Credentials, readOnly bool) reddit.Config {
	res := reddit.Config{
		ClientID:     rc.ClientID,
		ClientSecret: rc.ClientSecret,
		RefreshToken: rc.RefreshToken,
		Username:     rc.Username,
		Password:     rc.Password,
		UserAgent:    rc.UserAgent,
		ReadOnly:     readOnly,
		Timeout:      rc.Timeout,
		TokenURL:     rc.TokenURL,
		APIURL:       rc.APIURL,
		PublicURL:    rc.PublicURL,
	}
	if creds.ClientID != "" {
		res.ClientID, res.ClientSecret = creds.ClientID, creds.ClientSecret
	}
	if creds.RefreshToken != "" {
		res.RefreshToken = creds.RefreshToken
	}
	if creds.UserAgent != "" {
		res.UserAgent = creds.UserAgent
	}
	return res
}

// secrets returns credential values to mask in logs
func secrets() []string {
	var res []string
	for _, k := range []string{"REDDIT_CLIENT_SECRET", "REDDIT_REFRESH_TOKEN", "REDDIT_PASSWORD", "GROQ_API_KEY"} {
		if v := os.Getenv(k); v != "" {
			res = append(res, v)
		}
	}
	return res
}

// logger options kept for maskSecrets, secrets found after startup are added to them
var (
	logOpts    []lgr.Option
	logSecrets []string
	logLock    sync.Mutex
)

// setupLog configures lgr and the std logger. With logFile set the output also goes to a daily
// file named after it, the returned func closes it.
func setupLog(dbg, noColor bool, logFile string, secs ...string) (func(), error) {
	out, closer := io.Writer(os.Stdout), func() {}
	if logFile != "" {
		df, err := openDailyFile(logFile, time.Now)
		if err != nil {
			return closer, err
		}
		out, closer = io.MultiWriter(os.Stdout, df), func() { _ = df.Close() }
		noColor = true // no escape codes in files
	}

	opts := []lgr.Option{lgr.Out(out), lgr.Err(out)}
	if dbg {
		opts = append(opts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
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
		opts = append(opts, lgr.Map(colorizer))
	}

	logLock.Lock()
	logOpts, logSecrets = opts, nil
	logLock.Unlock()
	maskSecrets(secs...)
	return closer, nil
}

// maskSecrets hides the values in all further log output
func maskSecrets(vals ...string) {
	logLock.Lock()
	defer logLock.Unlock()
	for _, v := range vals {
		if v != "" && !slices.Contains(logSecrets, v) {
			logSecrets = append(logSecrets, v)
		}
	}
	opts := append([]lgr.Option{}, logOpts...)
	if len(logSecrets) > 0 {
		opts = append(opts, lgr.Secret(logSecrets...))
	}
	lgr.SetupStdLogger(opts...)
	lgr.Setup(opts...)
}

// configSecrets returns credentials written in the config file or taken from the environment
func configSecrets(cfg *config.Config) []string {
	return []string{cfg.Reddit.ClientSecret, cfg.Reddit.RefreshToken, cfg.Reddit.Password, cfg.LLM.APIKey}
}
