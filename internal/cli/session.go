package cli

import (
	"context"
	"fmt"

	"github.com/Rrens/crop-advisory/internal/security"
)

var sessionCommands = map[string]command{
	"status": {"", sessionStatus},
	"keygen": {"", sessionKeygen},
	"purge":  {"", sessionPurge},
}

type sessionInfo struct {
	Profile   string `json:"profile"`
	Store     string `json:"store"`
	Encrypted bool   `json:"encrypted"`
	LoggedIn  bool   `json:"logged_in"`
	APIURL    string `json:"api_url"`
}

// sessionStatus reports local state only; it never calls the backend
func sessionStatus(ctx context.Context, a *App, _ []string) error {
	return a.print(sessionInfo{
		Profile:   a.sess.Key(),
		Store:     a.store.Kind(),
		Encrypted: a.cfg.Session.EncryptionKey != "",
		LoggedIn:  a.sess.LoggedIn(ctx),
		APIURL:    a.cfg.API.BaseURL,
	})
}

func sessionKeygen(_ context.Context, a *App, _ []string) error {
	key, err := security.GenerateKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, key)
	return err
}

func sessionPurge(ctx context.Context, a *App, _ []string) error {
	n, err := a.store.Purge(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%d sessions removed\n", n)
	return err
}
