package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/skykit/internal/client/client"
	"github.com/dmitrijs2005/skykit/internal/client/config"
	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/logging"
)

// Facade is the part of *client.Client the REPL drives.
type Facade interface {
	Login(ctx context.Context, opts client.LoginOptions) (client.Session, error)
	Logout(ctx context.Context) error
	State() client.State
	Self() *models.Profile

	GetProfile(ctx context.Context, actor string) (*models.Profile, error)
	GetPost(ctx context.Context, uri string) (*models.Post, error)
	Post(ctx context.Context, payload models.PostPayload, opts ...client.PostOption) (*models.Post, error)
	DeletePost(ctx context.Context, uri string) error
	UploadImage(ctx context.Context, data []byte, alt string) (models.Image, error)

	ListConversations(ctx context.Context, limit int, cursor string) ([]*models.Conversation, string, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	GetMessages(ctx context.Context, convoID string, limit int, cursor string) ([]*models.ChatMessage, string, error)
	SendMessage(ctx context.Context, payload models.ChatMessagePayload) (*models.ChatMessage, error)
}

// SessionLoader returns the stored session, or nil when there is none.
type SessionLoader interface {
	Load(ctx context.Context) (*client.Session, error)
}

type App struct {
	config   *config.Config
	client   Facade
	sessions SessionLoader
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the REPL to fc. sessions may be nil.
func NewApp(cfg *config.Config, fc Facade, sessions SessionLoader, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		config:   cfg,
		client:   fc,
		sessions: sessions,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run authenticates if it can do so without prompting and then serves
// commands from stdin. It returns when the REPL ends or ctx is done, even
// if a read from stdin is still blocked.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to skykit (type 'help' for commands)")

	if err := a.autoLogin(ctx); err != nil {
		a.log.Warn(ctx, "automatic login failed", "error", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.status, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.log.Info(ctx, "interrupted")
	}
}

// autoLogin tries the stored session first and then configured
// credentials. It does nothing when neither is available.
func (a *App) autoLogin(ctx context.Context) error {
	if a.sessions != nil {
		s, err := a.sessions.Load(ctx)
		if err != nil {
			return err
		}
		if s != nil {
			_, err := a.client.Login(ctx, s.Resume())
			if err == nil {
				a.printSelf()
				return nil
			}
			a.log.Info(ctx, "stored session rejected", "did", s.DID, "error", err)
		}
	}

	if a.config != nil && a.config.Identifier != "" && a.config.Password != "" {
		if _, err := a.client.Login(ctx, client.Credentials{
			Identifier: a.config.Identifier,
			Password:   a.config.Password,
		}); err != nil {
			return err
		}
		a.printSelf()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.client.State() == client.LoggedIn
}

func (a *App) status() string {
	if self := a.client.Self(); self != nil && a.isLoggedIn() {
		return "@" + self.Handle
	}
	return a.client.State().String()
}
