package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/spaggo/internal/config"
	"github.com/five82/spaggo/internal/datewin"
	"github.com/five82/spaggo/internal/portal"
	"github.com/five82/spaggo/internal/session"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Save(session.Token) error
	Remove() error
}

// Options wire a Service.
type Options struct {
	Fetcher     portal.Fetcher
	Store       TokenStore
	State       *session.State
	Credentials config.Credentials
	MaxRelogins int
	Logger      *zap.Logger
}

// Service is the authenticated request engine: it logs in on demand, attaches
// the session token, and re-logs in when the portal reports expiry.
type Service struct {
	fetcher     portal.Fetcher
	store       TokenStore
	state       *session.State
	creds       config.Credentials
	maxRelogins int
	logger      *zap.Logger
}

// New validates opts and returns a Service.
func New(opts Options) (*Service, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if opts.MaxRelogins < 0 {
		return nil, fmt.Errorf("max relogins must not be negative")
	}
	state := opts.State
	if state == nil {
		state = session.NewState(session.Token{}, false)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:     opts.Fetcher,
		store:       opts.Store,
		state:       state,
		creds:       opts.Credentials,
		maxRelogins: opts.MaxRelogins,
		logger:      logger,
	}, nil
}

// Login authenticates, persists the token and makes it current. A rejected
// login removes the persisted token and returns *LoginRejectedError.
func (s *Service) Login(ctx context.Context) (session.Token, error) {
	body, err := s.fetcher.Login(ctx, portal.NewLoginRequest(s.creds.Username, s.creds.Password))
	if err != nil {
		return session.Token{}, fmt.Errorf("login: %w", err)
	}

	env, err := portal.ClassifyLogin(body)
	if err != nil {
		return session.Token{}, &UnexpectedResponseError{Path: portal.LoginPath, Want: portal.KindLoginSuccess, Got: env.Kind, Raw: body, Err: err}
	}

	switch env.Kind {
	case portal.KindLoginSuccess:
		studentID, err := session.StudentIDFromIdent(env.Login.Ident)
		if err != nil {
			return session.Token{}, fmt.Errorf("login: %w", err)
		}
		tok := session.Token{Token: env.Login.Token, TokenAP: env.Login.TokenAP, StudentID: studentID}
		if tok.IsZero() {
			return session.Token{}, &UnexpectedResponseError{Path: portal.LoginPath, Want: portal.KindLoginSuccess, Got: env.Kind, Raw: body, Err: errors.New("empty token")}
		}
		if err := s.store.Save(tok); err != nil {
			return session.Token{}, fmt.Errorf("persist token: %w", err)
		}
		s.state.Replace(tok)
		s.logger.Info("logged in", zap.String("student_id", studentID), zap.String("expire", env.Login.Expire))
		return tok, nil

	case portal.KindLoginError:
		s.state.Clear()
		if err := s.store.Remove(); err != nil {
			s.logger.Error("failed to remove stale token file, please remove it manually", zap.Error(err))
		}
		return session.Token{}, &LoginRejectedError{
			StatusCode: env.Notice.StatusCode,
			Info:       env.Notice.Info,
			Message:    env.Notice.Message,
		}

	default:
		return session.Token{}, &UnexpectedResponseError{Path: portal.LoginPath, Want: portal.KindLoginSuccess, Got: env.Kind, Raw: body}
	}
}

// Grades fetches every grade of the school year.
func (s *Service) Grades(ctx context.Context) ([]portal.Grade, error) {
	env, err := s.authenticatedGet(ctx, portal.GradesPath, portal.KindGrades)
	if err != nil {
		return nil, err
	}
	return env.Grades, nil
}

// Absences fetches absence, late-entry and early-exit events.
func (s *Service) Absences(ctx context.Context) ([]portal.Absence, error) {
	env, err := s.authenticatedGet(ctx, portal.AbsencesPath, portal.KindAbsences)
	if err != nil {
		return nil, err
	}
	return env.Absences, nil
}

// Agenda fetches agenda events within w.
func (s *Service) Agenda(ctx context.Context, w datewin.Window) ([]portal.AgendaEvent, error) {
	env, err := s.authenticatedGet(ctx, portal.AgendaPath(w.StartISO(), w.EndISO()), portal.KindAgenda)
	if err != nil {
		return nil, err
	}
	return env.Agenda, nil
}

// Lessons fetches lessons within w.
func (s *Service) Lessons(ctx context.Context, w datewin.Window) ([]portal.Lesson, error) {
	env, err := s.authenticatedGet(ctx, portal.LessonsPath(w.StartISO(), w.EndISO()), portal.KindLessons)
	if err != nil {
		return nil, err
	}
	return env.Lessons, nil
}

// authenticatedGet issues GET pathTemplate and returns the envelope when it
// classifies as want. An expired-token notice triggers a re-login and a retry
// of the same template, at most maxRelogins times.
func (s *Service) authenticatedGet(ctx context.Context, pathTemplate string, want portal.Kind) (portal.Envelope, error) {
	log := s.logger.With(zap.String("request_id", uuid.NewString()), zap.Stringer("want", want))

	tok, ok := s.state.Current()
	if !ok {
		log.Debug("no session token, logging in")
		var err error
		if tok, err = s.Login(ctx); err != nil {
			return portal.Envelope{}, err
		}
	}

	for relogins := 0; ; {
		path := portal.ExpandPath(pathTemplate, tok.StudentID)
		body, err := s.fetcher.Get(ctx, path, tok.Token)
		if err != nil {
			return portal.Envelope{}, fmt.Errorf("fetch %s: %w", want, err)
		}

		env, err := portal.Classify(body)
		if err != nil {
			return portal.Envelope{}, &UnexpectedResponseError{Path: path, Want: want, Got: env.Kind, Raw: body, Err: err}
		}

		switch env.Kind {
		case want:
			log.Debug("response classified", zap.String("path", path), zap.Int("relogins", relogins))
			return env, nil

		case portal.KindExpiredToken:
			if relogins >= s.maxRelogins {
				return portal.Envelope{}, &APIError{
					Path:       path,
					StatusCode: env.Notice.StatusCode,
					Err:        env.Notice.Error,
					Message:    env.Notice.Message,
					Relogins:   relogins,
				}
			}
			relogins++
			log.Info("portal rejected session token, logging in again",
				zap.Int("attempt", relogins),
				zap.Int("status", env.Notice.StatusCode),
				zap.String("message", env.Notice.Message))
			if tok, err = s.Login(ctx); err != nil {
				return portal.Envelope{}, err
			}

		default:
			return portal.Envelope{}, &UnexpectedResponseError{Path: path, Want: want, Got: env.Kind, Raw: body}
		}
	}
}
