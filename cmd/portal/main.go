package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-auth-client/auth"
	"github.com/jrsteele09/go-auth-client/backend"
	"github.com/jrsteele09/go-auth-client/errmap"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/logging"
	"github.com/jrsteele09/go-auth-client/profile"
	"github.com/jrsteele09/go-auth-client/router"
	"github.com/jrsteele09/go-auth-client/server"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/sessions/filerepo"
	"github.com/jrsteele09/go-auth-client/sessions/keyringrepo"
	"github.com/jrsteele09/go-auth-client/sessions/repofakes"
	"github.com/jrsteele09/go-auth-client/toast"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/rs/zerolog/log"
)

const usage = `usage: portal <command> [flags]

commands:
  login             sign in with e-mail and password
  social            sign in with google or instagram
  register          create an account
  complete-profile  send document and birth date after the first login
  skip-profile      leave the profile for later
  logout            end the session
  status            show the stored session
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("portal failed")
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	// .env is optional
	_ = godotenv.Load()
	c, err := config.New()
	if err != nil {
		return err
	}
	logging.Setup(c.GetEnv(), os.Stderr)
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPortal(ctx, c)
	if err != nil {
		return err
	}
	defer p.printer.Flush(p.toasts)

	return p.dispatch(ctx, args[0], args[1:])
}

// portal wires the components behind every command.
type portal struct {
	config  config.Config
	toasts  *toast.Notifier
	printer *toast.Printer
	router  *router.Router
	auth    *auth.Service
	profile *profile.Service
	store   string // where the session is kept
}

func newPortal(ctx context.Context, c config.Config) (*portal, error) {
	repo, location, err := sessionRepo(c)
	if err != nil {
		return nil, err
	}

	toasts := toast.New(toast.WithDefaultDuration(c.GetToastDuration()))
	client, err := backend.NewClient(c.GetBackendURL(), errmap.New(toasts, c.GetSkipToastPaths()...), backend.WithTimeout(c.GetRequestTimeout()))
	if err != nil {
		return nil, err
	}

	rt := router.New()
	rt.OnChange(func(loc router.Location) {
		fmt.Printf("-> %s\n", loc)
	})

	svc, err := auth.NewService(auth.Deps{
		Backend:   client,
		Store:     sessions.NewStore(repo),
		Notifier:  toasts,
		Navigator: rt,
		Inspector: jwt.NewInspector(),
	}, auth.WithoutStartupCheck())
	if err != nil {
		return nil, err
	}
	rt.Register(router.DefaultRoutes(svc)...)
	svc.CheckExistingSession(ctx)

	return &portal{
		config:  c,
		toasts:  toasts,
		printer: toast.NewPrinter(os.Stdout, c.GetEnv() == "DEV"),
		router:  rt,
		auth:    svc,
		profile: profile.NewService(client, svc, toasts, rt),
		store:   location,
	}, nil
}

// sessionRepo opens the configured session store and describes where it keeps the session.
func sessionRepo(c config.Config) (sessions.Repo, string, error) {
	switch c.GetSessionStore() {
	case config.StoreTypeKeyring:
		return keyringrepo.New(c.GetKeyringService()), "keyring:" + c.GetKeyringService(), nil
	case config.StoreTypeMemory:
		return repofakes.NewFakeSessionRepo(), "memory", nil
	default:
		repo, err := filerepo.New(c.GetDataFolder())
		if err != nil {
			return nil, "", err
		}
		return repo, repo.Path(), nil
	}
}

func (p *portal) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		email := fs.String("email", "", "e-mail")
		password := fs.String("password", "", "password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return p.auth.LoginWithPassword(ctx, *email, *password)

	case "social":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		provider := fs.String("provider", string(backend.GrantTypeGoogle), "google or instagram")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return p.social(ctx, backend.GrantType(*provider))

	case "register":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		var req backend.RegisterRequest
		fs.StringVar(&req.Name, "name", "", "full name")
		fs.StringVar(&req.Email, "email", "", "e-mail")
		fs.StringVar(&req.Document, "document", "", "CPF")
		fs.StringVar(&req.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
		fs.StringVar(&req.Password, "password", "", "password")
		fs.StringVar(&req.ConfirmPassword, "confirm-password", "", "password again")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return p.auth.RegisterUser(ctx, req)

	case "complete-profile":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		document := fs.String("document", "", "CPF")
		birthDate := fs.String("birth-date", "", "birth date (YYYY-MM-DD)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := p.router.Navigate(router.RouteCompleteProfile, nil); err != nil {
			return err
		}
		if p.router.Current().Path != router.RouteCompleteProfile {
			return nil
		}
		fmt.Printf("CPF: %s\n", profile.FormatDocument(*document))
		return p.profile.Submit(ctx, *document, *birthDate)

	case "skip-profile":
		return p.profile.Skip()

	case "logout":
		return p.auth.Logout(ctx)

	case "status":
		return p.status()

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// social runs the browser based login, receiving the redirect on the loopback server.
func (p *portal) social(ctx context.Context, provider backend.GrantType) error {
	srv, err := server.New(p.config.GetEnv(), server.Deps{Auth: p.auth, Toasts: p.toasts, Navigator: p.router})
	if err != nil {
		return err
	}
	httpServer := &http.Server{Addr: p.config.GetCallbackAddr(), Handler: srv}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()
	defer func() {
		if err := shutdown(httpServer); err != nil {
			log.Err(err).Msg("shutdown callback server")
		}
	}()

	if err := p.auth.GetSocialAuthURL(ctx, provider); err != nil {
		return err
	}
	p.printer.Flush(p.toasts)
	fmt.Printf("Waiting for the browser on http://%s%s\n", p.config.GetCallbackAddr(), server.RouteCallback)

	waitCtx, cancel := context.WithTimeout(ctx, p.config.GetCallbackTimeout())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- srv.WaitForCallback(waitCtx)
	}()
	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return <-done
	case err := <-done:
		return err
	}
}

func (p *portal) status() error {
	fmt.Printf("Session store: %s\n", p.store)
	if !p.auth.IsAuthenticated() {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Println("Signed in")
	if info, ok := p.auth.StoredUserInfo(); ok {
		fmt.Printf("  sub:      %s\n  name:     %s\n  email:    %s\n  username: %s\n", info.Sub, info.Name, info.Email, info.PreferredUsername)
	}
	if err := p.router.Navigate(router.RouteRoot, nil); err != nil {
		return err
	}
	return nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("callback server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
