package imapauth

import "fmt"

// ConnState describes the connection state.
//
// See RFC 9051 section 3.
type ConnState int

const (
	ConnStateNone ConnState = iota
	// In the not authenticated state, the client must authenticate
	// before most commands will be permitted. This state is entered
	// when a connection starts unless the connection has been
	// pre-authenticated.
	ConnStateNotAuthenticated
	// In the authenticated state, the client is authenticated. This
	// state is entered when a pre-authenticated connection starts or
	// when acceptable authentication credentials have been provided.
	ConnStateAuthenticated
	// In the logout state, the connection is being terminated, either
	// on client request (via the LOGOUT command) or by unilateral
	// server action.
	ConnStateLogout
)

// String implements fmt.Stringer.
func (state ConnState) String() string {
	switch state {
	case ConnStateNone:
		return "none"
	case ConnStateNotAuthenticated:
		return "not authenticated"
	case ConnStateAuthenticated:
		return "authenticated"
	case ConnStateLogout:
		return "logout"
	default:
		panic(fmt.Errorf("imapauth: unknown connection state %v", int(state)))
	}
}
