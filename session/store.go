// Package session tracks which question patterns a user has already seen,
// so repeated practice runs serve fresh material. Patterns are coarse
// signatures over subject and question type, not full question text.
package session

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// signatureLength is the number of hex characters kept from the pattern hash
const signatureLength = 12

// SessionStats summarizes one user's session
type SessionStats struct {
	UserID         string        `json:"user_id"`
	QuestionsSeen  int           `json:"questions_seen"`
	UniquePatterns int           `json:"unique_patterns"`
	Duration       time.Duration `json:"duration"`
}

// userSession tracks a single user's question history
type userSession struct {
	userID         string
	seenSignatures map[string]struct{}
	questionCount  int
	startedAt      time.Time
}

// Store is an in-memory, concurrency-safe store of per-user sessions.
// Construct one per application; there is no package-level instance.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*userSession
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: map[string]*userSession{},
		now:      time.Now,
	}
}

// Signature derives a stable pattern signature from subject, question type
// and an optional key variable. Parts are lowercased with spaces collapsed
// to underscores, joined with underscores and hashed; the first 12 hex
// characters of the MD5 sum identify the pattern.
func Signature(subject string, questionType string, keyVariable string) string {
	parts := []string{normalizePart(subject), normalizePart(questionType)}
	if keyVariable != "" {
		parts = append(parts, normalizePart(keyVariable))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return hex.EncodeToString(sum[:])[:signatureLength]
}

func normalizePart(part string) string {
	return strings.ReplaceAll(strings.ToLower(part), " ", "_")
}

// session returns the user's session, creating it on first use.
// Callers must hold s.mu.
func (s *Store) session(userID string) *userSession {
	existing, ok := s.sessions[userID]
	if !ok {
		existing = &userSession{
			userID:         userID,
			seenSignatures: map[string]struct{}{},
			startedAt:      s.now(),
		}
		s.sessions[userID] = existing
	}
	return existing
}

// CheckAndMark reports whether the pattern is new for the user and marks it
// as seen if so. It returns false when the user already saw the pattern.
func (s *Store) CheckAndMark(userID string, subject string, questionType string, keyVariable string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	signature := Signature(subject, questionType, keyVariable)

	if _, seen := session.seenSignatures[signature]; seen {
		return false
	}

	session.seenSignatures[signature] = struct{}{}
	session.questionCount++
	return true
}

// Unseen filters the given signatures down to the ones the user has not
// seen yet, preserving order
func (s *Store) Unseen(userID string, signatures []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	unseen := []string{}
	for _, signature := range signatures {
		if _, seen := session.seenSignatures[signature]; !seen {
			unseen = append(unseen, signature)
		}
	}
	return unseen
}

// Stats returns the user's session statistics
func (s *Store) Stats(userID string) SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(userID)
	return SessionStats{
		UserID:         session.userID,
		QuestionsSeen:  session.questionCount,
		UniquePatterns: len(session.seenSignatures),
		Duration:       s.now().Sub(session.startedAt),
	}
}

// Clear drops the user's session
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
