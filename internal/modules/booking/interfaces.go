package booking

// SessionStore is the registry the handler resolves live sessions through.
type SessionStore interface {
	Put(s *Session)
	Get(id string) (*Session, error)
	Delete(id string)
}
