package bot

import "sync"

// State is the position of one chat within the keyword flow.
type State int

const (
	// StateIdle means no flow is in progress. Free-form text in this
	// state gets a hint to use /start.
	StateIdle State = iota

	// StateAwaitingKeywords means the bot asked for a keyword list and
	// the next text message is parsed as one.
	StateAwaitingKeywords

	// StateAwaitingFrequencyChoice means the keyword list is stored and
	// the bot is waiting for the frequency inline-keyboard answer.
	StateAwaitingFrequencyChoice

	// StateAwaitingLimitChoice means the bot is waiting for the result
	// limit inline-keyboard answer.
	StateAwaitingLimitChoice

	// StateFetching means a provider fetch is in flight for this chat.
	// Further input is rejected until it finishes.
	StateFetching
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingKeywords:
		return "awaiting_keywords"
	case StateAwaitingFrequencyChoice:
		return "awaiting_frequency_choice"
	case StateAwaitingLimitChoice:
		return "awaiting_limit_choice"
	case StateFetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// session is the per-chat flow state: what the user has entered so far and
// where in the dialog they are. One session exists per chat at most; it is
// cleared when the flow completes, fails, or is cancelled.
type session struct {
	// State is the current flow position.
	State State

	// Keywords is the parsed, deduplicated phrase list.
	Keywords []string

	// WithFrequency records the frequency-keyboard answer.
	WithFrequency bool

	// Limit is the chosen maximum number of result rows.
	Limit int
}

// sessionStore holds sessions keyed by chat ID.
//
// Two locking levels exist: the store mutex guards the maps, and each chat
// has its own dialog lock that the handler holds across one whole update.
// Same-chat updates are therefore handled in arrival order while different
// chats proceed in parallel.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
	locks    map[int64]*sync.Mutex
}

// newSessionStore creates an empty store.
func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// chatLock returns the chat's dialog lock, creating it on first use.
// Locks are never removed: a goroutine may still hold one when its chat's
// session is cleared, and one mutex per chat ever seen is a trivial amount
// of memory.
func (s *sessionStore) chatLock(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	return l
}

// get returns the chat's session, creating an idle one if none exists.
func (s *sessionStore) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &session{State: StateIdle}
		s.sessions[chatID] = sess
	}
	return sess
}

// reset replaces the chat's session with a fresh one in the given state
// and returns it.
func (s *sessionStore) reset(chatID int64, state State) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{State: state}
	s.sessions[chatID] = sess
	return sess
}

// clear removes the chat's session entirely.
func (s *sessionStore) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
