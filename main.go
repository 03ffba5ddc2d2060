package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/core"
	"github.com/studio101-core/server/internal/httpapi"
	"github.com/studio101-core/server/internal/storage/postgres"
	logx "github.com/studio101-core/server/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "studio101",
		Usage: "STUDIO 101 storefront and shopping assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file loaded before reading the environment",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "chat",
				Usage: "talk to the assistant from the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user-id", Usage: "act as a logged-in customer"},
					&cli.StringFlag{Name: "user-email"},
					&cli.StringFlag{Name: "user-name"},
				},
				Action: chat,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: migrateDB,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logx.Fatal().Err(err).Msg("command failed")
	}
}

func loadConfig(c *cli.Context) (AppConfig, error) {
	if err := godotenv.Load(c.String("env-file")); err != nil {
		// a missing file is fine, the environment may be set already
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", c.String("env-file"), err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process environment config: %w", err)
	}
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := httpapi.NewHandler(httpapi.Deps{
		Catalog:      a.catalog,
		Sessions:     a.sessions,
		Assistant:    a.router,
		Orders:       a.orders,
		History:      a.ledger,
		CookieSecure: cfg.HTTP.CookieSecure,
	})
	if err != nil {
		return fmt.Errorf("build http handler: %w", err)
	}

	go a.sessions.Run(ctx, cfg.Sessions.SweepInterval)

	srv := httpapi.NewServer(cfg.HTTP, handler)
	go srv.Run(stop)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	srv.Close(shutdownCtx)
	return nil
}

func chat(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	s, _ := a.sessions.GetOrCreate(assistant.NewSessionID(a.now()))
	if id := strings.TrimSpace(c.String("user-id")); id != "" {
		s.SetUser(&auth.User{ID: id, Email: c.String("user-email"), DisplayName: c.String("user-name")})
	}

	return converse(ctx, a.router, s, os.Stdin, c.App.Writer)
}

// converse reads one message per line until EOF or cancellation.
func converse(ctx context.Context, r *assistant.Router, s *assistant.Session, in io.Reader, out io.Writer) error {
	for _, m := range s.Messages() {
		fmt.Fprintf(out, "%s\n", m.Text)
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		reply := r.Handle(ctx, s, sc.Text())
		if reply.Text == "" {
			continue
		}
		fmt.Fprintln(out, reply.Text)
		printResults(out, reply.Results)
		if reply.Checkout != nil {
			fmt.Fprintf(out, "결제 페이지: %s\n", reply.Checkout.RedirectURL)
		}
	}
}

func printResults(out io.Writer, products []catalog.Product) {
	for i, p := range products {
		fmt.Fprintf(out, "  %d. %s - %s (%s)\n", i+1, p.Name, p.Price, p.Category.Label())
	}
}

func migrateDB(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !cfg.Postgres.Enabled() {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := postgres.Open(c.Context, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	return postgres.Migrate(db)
}
