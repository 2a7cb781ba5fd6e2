package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/dmitrijs2005/pinauth/internal/config"
	"github.com/dmitrijs2005/pinauth/internal/logging"
	"github.com/dmitrijs2005/pinauth/internal/models"
	"github.com/dmitrijs2005/pinauth/internal/pin"
	"github.com/dmitrijs2005/pinauth/internal/repositories/metadata"
	"github.com/dmitrijs2005/pinauth/internal/services"
	"github.com/dmitrijs2005/pinauth/internal/session"
	"github.com/dmitrijs2005/pinauth/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sessionIface is the slice of the session manager the shell consumes.
// Tests provide a lightweight stub.
type sessionIface interface {
	Login(ctx context.Context, emailOrCode string) bool
	VerifyPin(ctx context.Context, pin, email string) bool
	Register(ctx context.Context, email string) bool
	RegisterAnonymous(ctx context.Context) string
	ResendPin(ctx context.Context, email string) bool
	Logout(ctx context.Context)
	User() *models.User
	IsAuthenticated() bool
	Err() string
	AccessToken() string
}

type App struct {
	config  *config.Config
	session sessionIface
	reader  *bufio.Reader
	db      *sql.DB
}

// NewApp opens the local auth database, wires the credential store, PIN
// issuer, auth service, and session manager, and returns the ready shell.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault()

	db, repo, err := metadata.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	users := store.NewUserStore(repo, log)
	pins := pin.NewIssuer(repo, cfg.PinTTL)
	svc := services.NewAuthService(users, pins, cfg, log)
	sess := session.NewManager(ctx, svc, repo, cfg, log)

	return &App{
		config:  cfg,
		session: sess,
		reader:  bufio.NewReader(os.Stdin),
		db:      db,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isAuthenticated() bool {
	return a.session.IsAuthenticated()
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	if u.Email != "" {
		return "(" + u.Email + ")"
	}
	return "(anonymous)"
}
