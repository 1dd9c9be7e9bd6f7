package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UserSession is one active login. Upload handlers resolve user_id against
// the active set before accepting files.
type UserSession struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	ClientIP   string    `json:"client_ip"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type AuthService struct {
	mu             sync.Mutex
	sessions       map[string]*UserSession // by session id
	sessionTimeout time.Duration
	maxUsers       int
}

func NewAuthService(maxUsers, sessionTimeoutMinutes int) *AuthService {
	if maxUsers <= 0 {
		maxUsers = 100
	}
	if sessionTimeoutMinutes <= 0 {
		sessionTimeoutMinutes = 120
	}
	return &AuthService{
		sessions:       make(map[string]*UserSession),
		sessionTimeout: time.Duration(sessionTimeoutMinutes) * time.Minute,
		maxUsers:       maxUsers,
	}
}

func (s *AuthService) Login(username, clientIP string) (*UserSession, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	if len(s.sessions) >= s.maxUsers {
		return nil, errors.New("maximum active users reached")
	}
	session := &UserSession{
		SessionID:  uuid.New().String(),
		UserID:     uuid.New().String(),
		Name:       username,
		ClientIP:   clientIP,
		LoggedInAt: time.Now(),
	}
	s.sessions[session.SessionID] = session
	return session, nil
}

func (s *AuthService) Logout(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return errors.New("session not found")
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *AuthService) GetActiveSessions() []*UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	out := make([]*UserSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

func (s *AuthService) expireLocked() {
	cutoff := time.Now().Add(-s.sessionTimeout)
	for id, sess := range s.sessions {
		if sess.LoggedInAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// package-level accessor used by vertical handlers

var globalAuthService *AuthService

func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}
