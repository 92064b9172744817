// Package router names and orders the wish middleware that runs in front of
// every SSH session.
package router

import (
	"net"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	gossh "golang.org/x/crypto/ssh"
)

type contextKey string

const sessionIdentityKey contextKey = "identity"

// Descriptor is a middleware with a stable name for startup logs and tests.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// Identity is what the server knows about a visitor. Scope keys durable
// preferences: the SHA256 public-key fingerprint when the client offered a
// key, else the username.
type Identity struct {
	Username    string
	Fingerprint string
	Scope       string
	RemoteIP    string
}

// Names lists descriptor names in chain order.
func Names(chain []Descriptor) []string {
	out := make([]string, 0, len(chain))
	for _, d := range chain {
		out = append(out, d.Name)
	}
	return out
}

// MiddlewareFromDescriptors returns the middleware in chain order, outermost
// first.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	out := make([]wish.Middleware, 0, len(chain))
	for _, d := range chain {
		if d.Middleware != nil {
			out = append(out, d.Middleware)
		}
	}
	return out
}

// ForWish reverses the chain for wish.WithMiddleware, which runs the last
// middleware first.
func ForWish(chain []Descriptor) []wish.Middleware {
	mw := MiddlewareFromDescriptors(chain)
	for i, j := 0, len(mw)-1; i < j; i, j = i+1, j-1 {
		mw[i], mw[j] = mw[j], mw[i]
	}
	return mw
}

// Compose wraps final so that chain[0] sees the session first.
func Compose(final ssh.Handler, chain []Descriptor) ssh.Handler {
	mw := MiddlewareFromDescriptors(chain)
	h := final
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// IdentityDescriptor stores the visitor Identity on the session context.
func IdentityDescriptor() Descriptor {
	return Descriptor{Name: "identity", Middleware: identity()}
}

func identity() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			s.Context().SetValue(sessionIdentityKey, IdentityOf(s))
			next(s)
		}
	}
}

// IdentityOf derives the Identity of a session without touching its context.
func IdentityOf(s ssh.Session) Identity {
	id := Identity{Username: s.User(), RemoteIP: RemoteIP(s)}
	if key := s.PublicKey(); key != nil {
		id.Fingerprint = gossh.FingerprintSHA256(key)
	}
	id.Scope = scopeFor(id)
	return id
}

func scopeFor(id Identity) string {
	switch {
	case id.Fingerprint != "":
		return id.Fingerprint
	case strings.TrimSpace(id.Username) != "":
		return "user:" + id.Username
	default:
		return "ip:" + id.RemoteIP
	}
}

// IdentityFrom returns the Identity stored by the identity middleware.
func IdentityFrom(ctx ssh.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(sessionIdentityKey).(Identity)
	return id, ok
}

// RemoteIP is the host part of the session's remote address, or "unknown".
func RemoteIP(s ssh.Session) string {
	remote := s.RemoteAddr()
	if remote == nil {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}

	if host == "" {
		return "unknown"
	}
	return host
}
