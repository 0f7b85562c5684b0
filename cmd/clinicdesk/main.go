// clinicdesk is the terminal client for the clinic backend: log in as a
// patient, doctor or staff account and work with appointments, slots
// and chat from the command line.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/auth"
	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/nav"
	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/internal/prefs"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const usage = `usage: clinicdesk <command> [args]

  login <email> <password>       authenticate and store the session
  logout                         drop the stored session
  whoami                         show the logged-in account
  appointments                   list your appointments by tab (patient)
  slots <doctorID> <YYYY-MM-DD>  show a doctor's slot grid for a date
  book <doctorID> <YYYY-MM-DD> <HH:MM> [reason]
                                 book a free slot (patient)
  cancel <appointmentID>         cancel an appointment
  chats                          list your conversations
  chat <conversationID>          show a conversation and follow it live
  send <conversationID> <text>   send a message
  log <YYYY-MM-DD> [check-in|no-show|complete <appointmentID>]
                                 front-desk day log (staff)
  profile [email phone address]  show or update your profile (patient)
  set-api-url <url>              pin a manual backend URL ("" to clear)
`

func main() {
	cfg := config.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	prefs   *prefs.Preferences
	client  *api.Client
	session *auth.Session
}

func newApp(cfg *config.Config, logger *logging.Logger) (*app, error) {
	store, err := newPrefsStore(cfg)
	if err != nil {
		return nil, err
	}
	p := prefs.New(store)

	resolver := api.NewResolver(api.ResolverConfig{
		Prefs:        p,
		LANDefault:   cfg.LANDefaultURL,
		Localhost:    cfg.LocalhostURL,
		ProbeTimeout: cfg.ProbeTimeout,
		Logger:       logger,
		Metrics:      metrics.NewClientMetrics(nil),
	})
	client := api.NewClient(resolver,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithMaxHostRetries(cfg.MaxHostRetries),
		api.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		prefs:   p,
		client:  client,
		session: auth.NewSession(client, p, logger),
	}, nil
}

func newPrefsStore(cfg *config.Config) (prefs.Store, error) {
	if cfg.PrefsBackend != "redis" {
		return prefs.NewMemoryStore(), nil
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return prefs.NewRedisStore(redis.NewClient(opts)), nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.session.Logout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "appointments":
		return a.cmdAppointments(ctx)
	case "slots":
		return a.cmdSlots(ctx, args)
	case "book":
		return a.cmdBook(ctx, args)
	case "cancel":
		return a.cmdCancel(ctx, args)
	case "chats":
		return a.cmdChats(ctx)
	case "chat":
		return a.cmdChat(ctx, args)
	case "send":
		return a.cmdSend(ctx, args)
	case "log":
		return a.cmdLog(ctx, args)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "set-api-url":
		return a.cmdSetAPIURL(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// restore requires a stored session and returns the user's nav registry
// so commands can refuse routes outside the role's tree.
func (a *app) restore(ctx context.Context) (*api.User, *nav.Registry, error) {
	user, err := a.session.Restore(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return nil, nil, errors.New("not logged in; run `clinicdesk login <email> <password>`")
	}
	if err != nil {
		return nil, nil, err
	}
	registry, err := nav.ForRole(a.session.Role())
	if err != nil {
		return nil, nil, err
	}
	return user, registry, nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: clinicdesk login <email> <password>")
	}
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	user, _, err := a.restore(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\tprofile=%s\n", user.Email, user.Role, user.ProfileID)
	fmt.Printf("backend: %s\n", a.client.BaseURL(ctx))
	return nil
}

func (a *app) cmdSetAPIURL(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: clinicdesk set-api-url <url>")
	}
	if err := a.prefs.SetManualAPIURL(ctx, args[0]); err != nil {
		return err
	}
	if args[0] == "" {
		fmt.Println("manual backend URL cleared; auto-detection active")
	} else {
		fmt.Println("backend pinned to", args[0])
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
