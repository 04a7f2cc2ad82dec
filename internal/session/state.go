package session

import "sync"

// State is the single in-process token slot. It is owned by whoever builds the
// service and passed explicitly; the lock only matters for watch mode, where
// scheduled jobs run on the cron goroutine.
type State struct {
	mu    sync.Mutex
	token Token
	set   bool
}

// NewState seeds a State, typically from FileStore.Load.
func NewState(tok Token, ok bool) *State {
	return &State{token: tok, set: ok && !tok.IsZero()}
}

// Current returns the held token and whether one is present.
func (s *State) Current() (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

// Replace swaps the token wholesale.
func (s *State) Replace(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
	s.set = !tok.IsZero()
}

// Clear drops the held token.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = Token{}
	s.set = false
}
