package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// Session sesión de un operador. Vence tras IdleTimeout sin actividad.
type Session struct {
	ID        string
	UserID    string
	Role      string
	CreatedAt time.Time
	LastSeen  time.Time
}

// SessionStore dueño único de las sesiones abiertas: se crean en el login, se destruyen
// en el logout y vencen por inactividad.
type SessionStore struct {
	mu       sync.Mutex
	idle     time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

// NewSessionStore idle es el tiempo máximo sin actividad.
func NewSessionStore(idle time.Duration) *SessionStore {
	return &SessionStore{idle: idle, now: time.Now, sessions: make(map[string]*Session)}
}

// WithClock reemplaza el reloj (tests).
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	return s
}

// IdleTimeout tiempo máximo sin actividad.
func (s *SessionStore) IdleTimeout() time.Duration { return s.idle }

// Create abre una sesión nueva.
func (s *SessionStore) Create(userID, role string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{ID: uuid.NewString(), UserID: userID, Role: role, CreatedAt: now, LastSeen: now}
	s.sessions[sess.ID] = sess
	return *sess
}

// Touch registra actividad. Una sesión inexistente o vencida responde
// domain.ErrSessionExpired; la vencida se elimina.
func (s *SessionStore) Touch(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.ErrSessionExpired
	}
	now := s.now()
	if now.Sub(sess.LastSeen) > s.idle {
		delete(s.sessions, id)
		return Session{}, domain.ErrSessionExpired
	}
	sess.LastSeen = now
	return *sess, nil
}

// Destroy cierra la sesión; cerrar una sesión inexistente no es error.
func (s *SessionStore) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// DestroyUser cierra todas las sesiones del usuario excepto keep.
func (s *SessionStore) DestroyUser(userID, keep string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.UserID == userID && id != keep {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Sweep elimina las sesiones vencidas y devuelve cuántas eliminó.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > s.idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len sesiones abiertas (incluye vencidas aún no barridas).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunJanitor barre las sesiones vencidas cada interval hasta que ctx termine.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration, onSweep func(n int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
