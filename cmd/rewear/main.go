package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/erazemk/rewear/internal/config"
	"github.com/erazemk/rewear/internal/db"
	"github.com/erazemk/rewear/internal/imaging"
	"github.com/erazemk/rewear/internal/kv"
	"github.com/erazemk/rewear/internal/logging"
	"github.com/erazemk/rewear/internal/market"
	"github.com/erazemk/rewear/internal/seed"
	"github.com/erazemk/rewear/internal/store"
)

const usage = `Usage: rewear [flags] <command> [args]

Flags:
  -c, -config <path>      config file (default: rewear.yaml, optional)
  -d, -db <path>          SQLite database path, or :memory: (default: rewear.sqlite3)
  -l, -log <path>         log file path (default: no file, stderr only)
  -h, -help               show this help and exit

Commands:
  seed                                      add the sample items to an empty catalog
  items [-status s] [-user id]              list items
  search [-category c] [-type t] [-size s] [query]
                                            search approved items
  show <item-id>                            show an item with its image data
  add-user <username> <email> [points]      create a user
  add-image <file>                          store a photo, print its id
  login <user-id>                           print a token for the user
  redeem -token t <item-id>                 redeem an item with points
  swap -token t [-offer item-id] [-message m] <item-id>
                                            request a swap
  respond -token t <request-id> <status>    accept, reject or complete a swap
  message -token t <user-id> <text>         send a chat message
  chat -token t [user-id]                   show a conversation, or list partners
  follow -token t [-undo] <user-id>         follow or unfollow a user
  notifications -token t [-mark-read]       list notifications
  stats                                     show storage usage and counters
`

// app holds everything one command needs.
type app struct {
	cfg     *config.Config
	store   *store.Store
	market  *market.Service
	images  *imaging.Library
	kv      *kv.Substrate
	metrics *prometheus.Registry
	out     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rewear", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath, dbPath, logPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stdout, usage)
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	// Logs go to stderr so stdout carries only command output.
	closeLog, err := logging.Setup(logging.Options{
		Level: logging.ParseLevel(cfg.Log.Level),
		Info:  os.Stderr,
		Error: os.Stderr,
		File:  cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	a, closeDB, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	a.out = stdout

	if cfg.Seed {
		seed.Initialize(ctx, a.store.Items)
	}

	return a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

// open builds the substrate over the configured backend and the layers above it.
func open(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	var backend kv.Backend
	closeDB := func() {}

	if cfg.InMemory() {
		backend = kv.NewMemoryBackend(cfg.Database.QuotaBytes)
	} else {
		database, err := db.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		closeDB = func() { database.Close() }
		backend = kv.NewSQLiteBackend(database, cfg.Database.QuotaBytes)
	}
	slog.Debug("storage ready", "path", cfg.Database.Path, "quota", cfg.Database.QuotaBytes)

	reg := prometheus.NewRegistry()
	substrate := kv.New(backend, kv.WithLogger(slog.Default()), kv.WithMetrics(kv.NewMetrics(reg)))
	images := imaging.NewLibrary(substrate)
	st := store.New(substrate, store.WithImages(images), store.WithLogger(slog.Default()))

	return &app{
		cfg:     cfg,
		store:   st,
		market:  market.New(st),
		images:  images,
		kv:      substrate,
		metrics: reg,
	}, closeDB, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "seed":
		return a.seed(ctx)
	case "items":
		return a.items(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "add-user":
		return a.addUser(ctx, args)
	case "add-image":
		return a.addImage(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "redeem":
		return a.redeem(ctx, args)
	case "swap":
		return a.swap(ctx, args)
	case "respond":
		return a.respond(ctx, args)
	case "message":
		return a.message(ctx, args)
	case "chat":
		return a.chat(ctx, args)
	case "follow":
		return a.follow(ctx, args)
	case "notifications":
		return a.notifications(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
