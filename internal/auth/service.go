// Package auth implements the login/logout lifecycle: validating Jira
// credentials upstream, persisting the session with its encrypted credential,
// and minting the session-bound access token.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jiradash/internal/crypto"
	"jiradash/internal/jira"
	"jiradash/internal/session"
	"jiradash/internal/token"
)

// CredentialValidator confirms a credential set is usable against Jira.
// Satisfied by *jira.Client; an interface so tests can stub the upstream.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context) error
}

// ValidatorFactory builds a validator for one credential set. Production
// wiring returns a fresh jira.Client; nothing is cached between requests.
type ValidatorFactory func(jiraDomain, email, apiToken string) CredentialValidator

// LoginResult bundles what the handler needs to answer a successful login.
type LoginResult struct {
	AccessToken string
	Session     *session.Session
	ExpiresIn   int64
}

// Service orchestrates the credential/session lifecycle.
type Service struct {
	store        session.Store
	cipher       *crypto.Cipher
	signer       *token.Signer
	sessionTTL   time.Duration
	newValidator ValidatorFactory
}

// NewService wires the login service. If newValidator is nil, a real Jira
// client is used.
func NewService(store session.Store, cipher *crypto.Cipher, signer *token.Signer, sessionTTL time.Duration, newValidator ValidatorFactory) *Service {
	if newValidator == nil {
		newValidator = func(jiraDomain, email, apiToken string) CredentialValidator {
			return jira.NewClient(jiraDomain, email, apiToken)
		}
	}
	return &Service{
		store:        store,
		cipher:       cipher,
		signer:       signer,
		sessionTTL:   sessionTTL,
		newValidator: newValidator,
	}
}

// Login validates the credential set upstream, supersedes any prior session
// for the account, stores the encrypted credential, and issues an access
// token that expires together with the session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	domain := jira.NormalizeDomain(req.JiraDomain)

	validator := s.newValidator(domain, req.Email, req.APIToken)
	if err := validator.ValidateCredentials(ctx); err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(req.APIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt API token: %w", err)
	}

	key := session.AccountKey{Email: req.Email, JiraDomain: domain}
	sess, err := s.store.Create(ctx, key, encrypted, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Token lifetime is aligned to the session record so neither outlives
	// the other.
	accessToken, err := s.signer.Issue(sess.ID, sess.Email, sess.JiraDomain, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	slog.Info("successful login", "email", sess.Email, "jira_domain", sess.JiraDomain)

	return &LoginResult{
		AccessToken: accessToken,
		Session:     sess,
		ExpiresIn:   int64(s.sessionTTL.Seconds()),
	}, nil
}

// Logout deactivates the session referenced by the presented token. The JWT
// itself stays verifiable until expiry, so the session flag is the only
// thing that makes logout effective.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Deactivate(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	return nil
}
