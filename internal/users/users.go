// Package users manages learner identities and the current-user setting.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/store"
)

// DefaultUsername is the user selected when none has been chosen.
const DefaultUsername = "LocalUser"

// ErrInvalidUsername is returned for names that fail validation.
var ErrInvalidUsername = errors.New("invalid username")

type usernameInput struct {
	Username string `validate:"required,max=32,printable"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("printable", validatePrintable)
	return v
}

func validatePrintable(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// NormalizeUsername trims name and validates it.
func NormalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Struct(usernameInput{Username: name}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("%w: %q fails %s", ErrInvalidUsername, name, verrs[0].Tag())
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}
	return name, nil
}

// Directory creates, lists and switches users.
type Directory struct {
	repo store.Repo
	log  zerolog.Logger

	Now func() time.Time
}

// NewDirectory creates a Directory.
func NewDirectory(repo store.Repo, log zerolog.Logger) *Directory {
	return &Directory{
		repo: repo,
		log:  log.With().Str("component", "users").Logger(),
		Now:  time.Now,
	}
}

// Ensure returns the user named username, creating it with stats and
// progress rows on first reference.
func (d *Directory) Ensure(ctx context.Context, username string) (store.User, error) {
	name, err := NormalizeUsername(username)
	if err != nil {
		return store.User{}, err
	}
	var u store.User
	err = d.repo.InTx(ctx, func(tx store.Repo) error {
		var err error
		u, err = d.ensure(ctx, tx, name)
		return err
	})
	return u, err
}

func (d *Directory) ensure(ctx context.Context, tx store.Repo, name string) (store.User, error) {
	now := d.Now()
	if err := tx.CreateUser(ctx, store.User{ID: uuid.NewString(), Username: name, CreatedAt: now}); err != nil {
		return store.User{}, err
	}
	u, err := tx.UserByName(ctx, name)
	if err != nil {
		return store.User{}, err
	}
	if u == nil {
		return store.User{}, fmt.Errorf("user %q missing after insert", name)
	}
	if err := tx.EnsureStats(ctx, u.ID, now); err != nil {
		return store.User{}, err
	}
	if err := tx.InitProgress(ctx, u.ID); err != nil {
		return store.User{}, err
	}
	return *u, nil
}

// List returns all users ordered case-insensitively by name.
func (d *Directory) List(ctx context.Context) ([]store.User, error) {
	return d.repo.ListUsers(ctx)
}

// CurrentName returns the persisted current username, or DefaultUsername.
func (d *Directory) CurrentName(ctx context.Context) (string, error) {
	name, ok, err := d.repo.Setting(ctx, store.SettingCurrentUser)
	if err != nil {
		return "", err
	}
	if !ok || name == "" {
		return DefaultUsername, nil
	}
	return name, nil
}

// Current ensures and returns the current user.
func (d *Directory) Current(ctx context.Context) (store.User, error) {
	name, err := d.CurrentName(ctx)
	if err != nil {
		return store.User{}, err
	}
	return d.Ensure(ctx, name)
}

// Switch makes username the current user, creating it when needed.
func (d *Directory) Switch(ctx context.Context, username string) (store.User, notify.Event, error) {
	name, err := NormalizeUsername(username)
	if err != nil {
		return store.User{}, notify.Event{Kind: notify.UserSwitchFailed, Subject: username}, err
	}

	var u store.User
	err = d.repo.InTx(ctx, func(tx store.Repo) error {
		var err error
		if u, err = d.ensure(ctx, tx, name); err != nil {
			return err
		}
		return tx.SetSetting(ctx, store.SettingCurrentUser, u.Username)
	})
	if err != nil {
		d.log.Error().Err(err).Str("username", name).Msg("switch user failed")
		return store.User{}, notify.Event{Kind: notify.UserSwitchFailed, Subject: name}, fmt.Errorf("switch user: %w", err)
	}
	d.log.Info().Str("username", u.Username).Str("id", u.ID).Msg("switched user")
	return u, notify.Event{Kind: notify.UserSwitched, Subject: u.Username}, nil
}
