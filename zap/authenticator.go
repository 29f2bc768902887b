// File: zap/authenticator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package zap

import "sync"

// Decision is an authenticator's verdict on one connection.
type Decision struct {
	Allow      bool
	UserID     string            // becomes the connection's User-Id metadata
	Metadata   map[string]string // extra ZMTP properties returned when allowed
	StatusText string            // optional status text; defaults to OK/Denied
}

// Authenticator decides ZAP requests. Implementations must be safe for
// concurrent use; the handler may be shared.
type Authenticator interface {
	Authenticate(req *Request) (Decision, error)
}

// Func adapts a plain function to an Authenticator.
type Func func(req *Request) (Decision, error)

// Authenticate implements Authenticator.
func (f Func) Authenticate(req *Request) (Decision, error) { return f(req) }

// AllowAll accepts every request. Useful for examples and for CURVE setups
// where key possession alone is the policy.
type AllowAll struct{}

// Authenticate implements Authenticator.
func (AllowAll) Authenticate(req *Request) (Decision, error) {
	return Decision{Allow: true}, nil
}

// CurveAllowList accepts CURVE clients whose Z85 public key was added to
// the list. The key doubles as the user id.
type CurveAllowList struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewCurveAllowList builds a list pre-populated with keys.
func NewCurveAllowList(keys ...string) *CurveAllowList {
	l := &CurveAllowList{keys: make(map[string]struct{}, len(keys))}
	l.Add(keys...)
	return l
}

// Add whitelists client public keys.
func (l *CurveAllowList) Add(keys ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, k := range keys {
		l.keys[k] = struct{}{}
	}
}

// Remove drops a key from the list.
func (l *CurveAllowList) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
}

// Contains reports whether key is whitelisted.
func (l *CurveAllowList) Contains(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.keys[key]
	return ok
}

// Authenticate implements Authenticator.
func (l *CurveAllowList) Authenticate(req *Request) (Decision, error) {
	key, ok := req.CurveClientKey()
	if !ok {
		return Decision{StatusText: "CURVE credentials required"}, nil
	}
	if !l.Contains(key) {
		return Decision{StatusText: "Unknown client key"}, nil
	}
	return Decision{Allow: true, UserID: key}, nil
}
