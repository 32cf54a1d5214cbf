// Package imapauth implements the client side of IMAP PLAIN
// authentication.
//
// The PLAIN SASL mechanism is defined in RFC 4616 and the IMAP
// AUTHENTICATE command in RFC 9051 section 6.2.2. When the server
// advertises SASL-IR (RFC 4959) the initial client response is sent
// inline with the command; otherwise the exchange is split across a
// continuation round-trip.
package imapauth

import "fmt"

// AuthResult is the outcome of one authentication attempt.
type AuthResult int

const (
	// AuthSuccess indicates the server accepted the credentials.
	AuthSuccess AuthResult = iota
	// AuthFailure indicates the server rejected the credentials, or that
	// the attempt failed before anything was sent.
	AuthFailure
	// AuthUnavail indicates the server doesn't support the command or
	// mechanism at all. Callers may try another mechanism without
	// re-prompting for credentials.
	AuthUnavail
)

// String implements fmt.Stringer.
func (res AuthResult) String() string {
	switch res {
	case AuthSuccess:
		return "success"
	case AuthFailure:
		return "failure"
	case AuthUnavail:
		return "unavailable"
	default:
		panic(fmt.Errorf("imapauth: unknown auth result %v", int(res)))
	}
}

// CredentialSource supplies the username and password for an
// authentication attempt. Implementations may prompt the user;
// returning an error aborts the attempt before anything is sent on the
// wire.
type CredentialSource interface {
	Username() (string, error)
	Password() (string, error)
}

// NewCredentials returns a CredentialSource that always yields the given
// username and password.
func NewCredentials(username, password string) CredentialSource {
	return &credentials{username: username, password: password}
}

type credentials struct {
	username, password string
}

func (creds *credentials) Username() (string, error) {
	return creds.username, nil
}

func (creds *credentials) Password() (string, error) {
	return creds.password, nil
}

// StatusReporter receives user-visible progress messages from an
// authentication attempt.
//
// Notify sets a transient status message, NotifyError reports a failure
// and Clear removes the transient status. Clear is invoked on every exit
// path so a stale "Logging in..." message never outlives the attempt.
type StatusReporter interface {
	Notify(message string)
	NotifyError(message string)
	Clear()
}

// NopReporter is a StatusReporter that discards all messages.
type NopReporter struct{}

func (NopReporter) Notify(message string)      {}
func (NopReporter) NotifyError(message string) {}
func (NopReporter) Clear()                     {}
