package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/universidad/internal/apiclient"
	"github.com/JonMunkholm/universidad/internal/config"
	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/JonMunkholm/universidad/internal/core/entities"
	"github.com/google/uuid"
)

// Session is the console state of one browser: one page per entity, as a
// single-page client would hold them.
type Session struct {
	ID         string
	Facultades *entities.FacultadesPage
	Carreras   *entities.CarrerasPage

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionStore keeps sessions in memory, keyed by a cookie holding a UUID.
type SessionStore struct {
	cfg      config.SessionConfig
	api      *apiclient.Client
	notifier core.Notifier
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store whose pages talk to api and
// announce outcomes through notifier. The notifier is shared by every
// session, so each browser sees the toasts raised by all of them.
func NewSessionStore(cfg config.SessionConfig, api *apiclient.Client, notifier core.Notifier) *SessionStore {
	return &SessionStore{
		cfg:      cfg,
		api:      api,
		notifier: notifier,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session of the request, creating one (and setting its
// cookie) when the request has none or its session expired.
func (st *SessionStore) Get(w http.ResponseWriter, r *http.Request) *Session {
	now := st.now()

	if c, err := r.Cookie(st.cfg.CookieName); err == nil {
		st.mu.Lock()
		sess, ok := st.sessions[c.Value]
		st.mu.Unlock()
		if ok && sess.idleSince(now) <= st.cfg.TTL {
			sess.touch(now)
			return sess
		}
	}

	sess := st.newSession(now)

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     st.cfg.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   st.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (st *SessionStore) newSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Facultades: entities.NewFacultadesPage(st.api.Facultades, st.notifier),
		Carreras:   entities.NewCarrerasPage(st.api.Carreras, st.api.Facultades, st.notifier),
		lastSeen:   now,
	}
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Expire removes sessions idle for longer than the TTL and returns how
// many were removed.
func (st *SessionStore) Expire() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince(now) > st.cfg.TTL {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor expires idle sessions every cleanup interval until ctx is done.
func (st *SessionStore) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(st.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Expire(); n > 0 {
				slog.Debug("expired idle sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}
