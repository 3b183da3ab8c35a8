package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

// Authenticator logs the browser session in.
type Authenticator interface {
	Login(ctx context.Context, creds entity.Credentials) error
}

type authenticator struct {
	browser   repository.BrowserRepository
	loginURL  string
	selectors Selectors
	verify    bool
	logger    *zap.Logger
}

// NewAuthenticator creates an Authenticator that submits the form at loginURL.
// When verify is set, Login fails with repository.ErrAuthenticationFailed if
// the login form is still shown after submitting.
func NewAuthenticator(browser repository.BrowserRepository, loginURL string, selectors Selectors, verify bool, logger *zap.Logger) Authenticator {
	return &authenticator{
		browser:   browser,
		loginURL:  loginURL,
		selectors: selectors,
		verify:    verify,
		logger:    logger,
	}
}

func (a *authenticator) Login(ctx context.Context, creds entity.Credentials) error {
	if err := a.browser.Navigate(ctx, a.loginURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	if err := a.browser.WaitVisible(ctx, a.selectors.LoginIdentity); err != nil {
		return fmt.Errorf("login form did not render: %w", err)
	}

	if err := a.browser.SendKeys(ctx, a.selectors.LoginIdentity, creds.Identifier); err != nil {
		return fmt.Errorf("failed to enter login identifier: %w", err)
	}
	if err := a.browser.SendKeys(ctx, a.selectors.LoginPassword, creds.Password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	if err := a.browser.Click(ctx, a.selectors.LoginSubmit); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	if !a.verify {
		a.logger.Info("login submitted, verification disabled")
		return nil
	}

	if err := a.browser.WaitNotPresent(ctx, a.selectors.LoginIdentity); err != nil {
		if errors.Is(err, repository.ErrTimeout) {
			return fmt.Errorf("%w: login form still shown for %s", repository.ErrAuthenticationFailed, creds.Identifier)
		}
		return fmt.Errorf("failed to verify login: %w", err)
	}

	a.logger.Info("login", zap.String("identifier", creds.Identifier))
	return nil
}
