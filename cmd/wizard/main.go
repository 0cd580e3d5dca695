package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/config"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
	"github.com/m04kA/SMC-CleaningBooking/internal/session"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

const usage = `Usage: wizard [-config path] [-v] <command> [flags]

Commands:
  catalog    show services, cleaners and service areas
  book       fill the booking wizard from flags and go to payment
  resume     continue after the payment provider redirected back (-return-url)
  login      sign in and remember the session
  register   create an account and sign in
  logout     forget the stored session
  bookings   list bookings of the signed-in customer
  cancel     cancel an unpaid booking (-booking)
`

// app зависимости, общие для всех команд
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	client  *backend.Client
	session *session.Session
	out     io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	global := flag.NewFlagSet("wizard", flag.ContinueOnError)
	global.SetOutput(os.Stderr)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	configPath := global.String("config", envOr("CONFIG_PATH", "config.toml"), "path to config.toml")
	verbose := global.Bool("v", false, "log at the configured level instead of warnings only")

	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	level := "warn"
	if *verbose {
		level = cfg.Logs.Level
	}
	log, err := logger.NewStderr("", level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Close()

	// Сессия и клиент ссылаются друг на друга: базовый клиент без токена нужен сессии
	// для входа, а клиент с токеном сессии - всем остальным запросам
	base := backend.NewClient(cfg.Wizard.BackendURL, time.Duration(cfg.Wizard.RequestTimeout)*time.Second, log)
	sess := session.NewSession(base, session.NewFileStore(cfg.Wizard.SessionFile), log)

	a := &app{
		cfg:     cfg,
		log:     log,
		client:  base.WithTokenSource(sess),
		session: sess,
		out:     out,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sess.Init(ctx); err != nil {
		log.Warn("Session init failed: %v", err)
	}

	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "catalog":
		err = a.catalog(ctx)
	case "book":
		err = a.book(ctx, cmdArgs)
	case "resume":
		err = a.resume(ctx, cmdArgs)
	case "login":
		err = a.login(ctx, cmdArgs)
	case "register":
		err = a.register(ctx, cmdArgs)
	case "logout":
		err = a.logout()
	case "bookings":
		err = a.bookings(ctx)
	case "cancel":
		err = a.cancel(ctx, cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		global.Usage()
		return 2
	}

	var exitErr exitCode
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return int(exitErr)
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", backend.Detail(err))
		return 1
	}
}

// exitCode завершение с кодом без дополнительного сообщения
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
