package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	_ "github.com/lib/pq"
	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/app/services"
	"github.com/quintans/noovo/internal/config"
	"github.com/quintans/noovo/internal/gateways/bellmedia"
	"github.com/quintans/noovo/internal/gateways/capi"
	"github.com/quintans/noovo/internal/gateways/graphql"
	"github.com/quintans/noovo/internal/gateways/repository"
	"github.com/quintans/noovo/internal/gateways/secrets"
	"github.com/quintans/noovo/internal/lib/https"
	"github.com/quintans/noovo/internal/model"
	"github.com/quintans/noovo/internal/web"
)

const usage = `usage: noovo <command> [arguments]

commands:
  login -u USER -p PASSWORD [-site SITE]
  logout
  status
  account
  categories
  elements HANDLE
  search TEXT
  info ID
  play HANDLE | play ID VERSION [SEASON EPISODE]
  serve
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		slog.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return faults.Errorf("loading configuration: %w", err)
	}
	setupLogger(cfg.LogLevel)

	keys := secrets.NewSecrets()
	creds := cfg.Credentials
	if creds.Username == "" {
		stored, err := keys.GetCredentials()
		if err != nil {
			slog.Warn("Unable to read stored credentials", "error", err)
		} else if stored.Complete() {
			creds = stored
		}
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	db := repository.NewDB(store)

	session, err := https.NewSession(
		https.WithTimeout(cfg.Timeout),
		https.WithRateLimit(cfg.RateLimit),
		https.WithRetries(cfg.Retries),
		https.WithCookieStore(db),
	)
	if err != nil {
		return err
	}
	if err := session.Restore(ctx); err != nil {
		slog.Warn("Unable to restore cookies", "error", err)
	}

	noovo := services.NewNoovo(ctx, services.Deps{
		Login:     bellmedia.New(session),
		Catalog:   graphql.New(session),
		Packaging: capi.New(session),
		Repo:      db,
		Tables:    app.DefaultTables(),
		Language:  cfg.Language,
	}, creds)

	switch cmd {
	case "login":
		return login(ctx, noovo, keys, cfg, args, out)
	case "logout":
		noovo.Logout(ctx)
		return keys.DeleteCredentials()
	case "status":
		return status(ctx, noovo, out)
	case "account":
		a, err := noovo.Account(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, a)
	case "categories":
		elements, err := noovo.RootCategories(ctx)
		if err != nil {
			return err
		}
		printElements(out, elements)
		return nil
	case "elements":
		return elements(ctx, noovo, args, out)
	case "search":
		return search(ctx, noovo, strings.Join(args, " "), out)
	case "info":
		return info(ctx, noovo, args, out)
	case "play":
		return play(ctx, noovo, args, out)
	case "serve":
		return serve(ctx, noovo, db, cfg.Listen)
	}

	return faults.Errorf("unknown command '%s'\n%s", cmd, usage)
}

func setupLogger(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func newStore(ctx context.Context, cfg config.Config) (repository.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := repository.NewRedisClientWithURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client), func() { client.Close() }, nil
	case config.StorePostgres:
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, faults.Errorf("opening database: %w", err)
		}
		store := repository.NewPostgresStore(conn)
		if err := store.Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, func() { conn.Close() }, nil
	}

	store, err := repository.NewDiskStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

func login(ctx context.Context, noovo *services.Noovo, keys app.Secrets, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", cfg.Credentials.Username, "username")
	password := fs.String("p", cfg.Credentials.Password, "password")
	site := fs.String("site", cfg.Credentials.Site, "login site")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !noovo.Login(ctx, *username, *password, *site) {
		return faults.Errorf("login failed for %s: %w", *username, app.ErrAuth)
	}
	if err := keys.SetCredentials(noovo.Auth().Credentials()); err != nil {
		slog.Warn("Unable to store credentials", "error", err)
	}

	return status(ctx, noovo, out)
}

func status(ctx context.Context, noovo *services.Noovo, out io.Writer) error {
	if !noovo.EnsureLogin(ctx, false) {
		fmt.Fprintln(out, "not logged in")
		return nil
	}
	auth := noovo.Auth()
	expiry := auth.Expiry()
	ent := auth.Entitlements()
	fmt.Fprintf(out, "logged in as %s (profile %s)\n", auth.Credentials().Username, auth.ProfileID())
	fmt.Fprintf(out, "token expires %s (%s)\n", humanize.Time(expiry), expiry.Format(time.DateTime))
	fmt.Fprintf(out, "subscriptions: %s\n", strings.Join(ent.Subscriptions, ", "))
	fmt.Fprintf(out, "packages: %s\n", strings.Join(ent.Packages, ", "))
	return nil
}

func elements(ctx context.Context, noovo *services.Noovo, args []string, out io.Writer) error {
	if len(args) != 1 {
		return faults.Errorf("expected a category handle")
	}
	category, err := model.CategoryFromURL(args[0])
	if err != nil {
		return err
	}
	list, err := noovo.Elements(ctx, &category)
	if err != nil {
		return err
	}
	printElements(out, list)
	return nil
}

func search(ctx context.Context, noovo *services.Noovo, text string, out io.Writer) error {
	results, err := noovo.Search(ctx, text)
	if err != nil {
		return err
	}
	for _, r := range results {
		printResult(out, r)
	}
	fmt.Fprintf(out, "%s results\n", humanize.Comma(int64(len(results))))
	return nil
}

func info(ctx context.Context, noovo *services.Noovo, args []string, out io.Writer) error {
	if len(args) != 1 {
		return faults.Errorf("expected a content id")
	}
	infos, err := noovo.ResultInfosByID(ctx, args[0])
	if err != nil {
		return err
	}
	for _, version := range []string{model.VersionFR, model.VersionEN} {
		info, ok := infos[version]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "[%s] %s (%d) %s\n", version, info.Title, info.Year, info.Kind)
		for _, key := range info.Keys() {
			m := info.Medias[key]
			fmt.Fprintf(out, "  %-8s %-40s %8s access=%t %s\n",
				key, m.Title, time.Duration(m.Duration)*time.Second, m.HasAccess, m.ToURL(""))
		}
	}
	return nil
}

func play(ctx context.Context, noovo *services.Noovo, args []string, out io.Writer) error {
	switch len(args) {
	case 1:
		media, err := model.MediaFromURL(args[0])
		if err != nil {
			return err
		}
		infos, err := noovo.PlayInfos(ctx, media)
		if err != nil {
			return err
		}
		return printJSON(out, infos)
	case 2, 4:
		infos, err := noovo.ResultInfosByID(ctx, args[0])
		if err != nil {
			return err
		}
		info, ok := infos[args[1]]
		if !ok {
			return faults.Errorf("version '%s' of %s: %w", args[1], args[0], app.ErrNotFound)
		}
		var season, episode int
		if len(args) == 4 {
			if season, err = strconv.Atoi(args[2]); err != nil {
				return faults.Errorf("invalid season '%s'", args[2])
			}
			if episode, err = strconv.Atoi(args[3]); err != nil {
				return faults.Errorf("invalid episode '%s'", args[3])
			}
		}
		p, err := noovo.ResultPlayInfos(ctx, info, season, episode)
		if err != nil {
			return err
		}
		return printJSON(out, p)
	}
	return faults.Errorf("expected a media handle or an id and a version")
}

func serve(ctx context.Context, noovo *services.Noovo, store web.Pinger, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(noovo, store, os.Stdout).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			slog.Error("Failed to shutdown server", "error", err)
		}
	}()

	slog.Info("Listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return faults.Errorf("serving on %s: %w", addr, err)
	}
	return nil
}

func printElements(out io.Writer, elements []model.Element) {
	for _, e := range elements {
		if e.IsCategory() {
			fmt.Fprintf(out, "%-8s %-40s %s\n", e.Category.Kind, e.Category.Title, e.Category.ToURL(""))
			continue
		}
		printResult(out, *e.Result)
	}
}

func printResult(out io.Writer, r model.SearchResult) {
	access := ""
	if !r.HasAccess {
		access = " (no access)"
	}
	fmt.Fprintf(out, "%-8s %-40s %s%s\n", model.ObjResult, r.Title, r.ID, access)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
