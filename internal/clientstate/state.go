// Package clientstate holds the client's mirror of the session: an
// explicit, observable state container instead of ambient global
// state. Persistence is a serialize-on-change, hydrate-on-start
// boundary behind the Storage interface.
package clientstate

import (
	"sync"

	"github.com/micr0xy/NomadConnect/internal/user"
)

// Status is the client-side authentication state.
type Status int

const (
	// StatusUnknown is the initial state, before the first session check.
	StatusUnknown Status = iota
	// StatusChecking means a session check is in flight. Protected
	// views render a neutral loading state, not a redirect.
	StatusChecking
	// StatusAuthenticated means the last check succeeded.
	StatusAuthenticated
	// StatusAnonymous means the last check failed or the user logged out.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is the persisted subset of the container.
type Snapshot struct {
	User            *user.User `json:"user,omitempty"`
	Token           string     `json:"token,omitempty"`
	IsAuthenticated bool       `json:"isAuthenticated"`
}

// Storage persists snapshots across client restarts. Load returns
// (nil, nil) when nothing has been saved yet.
type Storage interface {
	Load() (*Snapshot, error)
	Save(Snapshot) error
}

// Container is the observable session state container. It is passed
// by reference to whatever renders the UI; subscribers are notified
// on every status transition.
type Container struct {
	mu      sync.Mutex
	status  Status
	user    *user.User
	token   string
	storage Storage
	subs    []func(Status)
}

func NewContainer(storage Storage) *Container {
	return &Container{
		status:  StatusUnknown,
		storage: storage,
	}
}

// Hydrate restores the persisted snapshot. The status stays Unknown:
// a restored token is a hint, not proof, until the first check runs.
func (c *Container) Hydrate() error {
	if c.storage == nil {
		return nil
	}

	snap, err := c.storage.Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	c.mu.Lock()
	c.user = snap.User
	c.token = snap.Token
	c.mu.Unlock()
	return nil
}

// Subscribe registers a callback invoked after every status change.
func (c *Container) Subscribe(fn func(Status)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Container) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Container) User() *user.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Container) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// BeginCheck marks a session check in flight. Nothing is persisted;
// Checking is transient by definition.
func (c *Container) BeginCheck() {
	c.transition(func() {
		c.status = StatusChecking
	})
}

// SetAuthenticated records a successful signup, login, or session
// check, from any state.
func (c *Container) SetAuthenticated(u *user.User, token string) error {
	c.transition(func() {
		c.status = StatusAuthenticated
		c.user = u
		c.token = token
	})
	return c.persist()
}

// SetAnonymous records a failed or rejected session check.
func (c *Container) SetAnonymous() error {
	c.transition(func() {
		c.status = StatusAnonymous
		c.user = nil
		c.token = ""
	})
	return c.persist()
}

// Logout drops the session unconditionally. The client is treated as
// logged out even if persisting the cleared snapshot fails.
func (c *Container) Logout() error {
	return c.SetAnonymous()
}

func (c *Container) transition(apply func()) {
	c.mu.Lock()
	apply()
	subs := make([]func(Status), len(c.subs))
	copy(subs, c.subs)
	status := c.status
	c.mu.Unlock()

	for _, fn := range subs {
		fn(status)
	}
}

func (c *Container) persist() error {
	if c.storage == nil {
		return nil
	}

	c.mu.Lock()
	snap := Snapshot{
		User:            c.user,
		Token:           c.token,
		IsAuthenticated: c.status == StatusAuthenticated,
	}
	c.mu.Unlock()

	return c.storage.Save(snap)
}
