package imapclient

import (
	"errors"
	"fmt"

	"github.com/emersion/go-imapauth"
	"github.com/emersion/go-imapauth/internal"
	"github.com/emersion/go-imapauth/msgbuf"
	"golang.org/x/text/secure/precis"
)

// plainCommandName is the wire keyword that starts a PLAIN exchange.
const plainCommandName = "AUTHENTICATE PLAIN"

// ErrAlreadyLoggedIn is returned by AuthenticatePlain on a connection
// that isn't in the not-authenticated state.
var ErrAlreadyLoggedIn = errors.New("imapclient: already logged in")

// AuthenticatePlain performs the PLAIN authentication exchange defined
// in RFC 4616.
//
// The credentials are obtained from creds and normalized with the PRECIS
// OpaqueString profile before anything is sent; a failure there aborts
// the attempt with AuthFailure and no wire traffic. When the server
// advertises SASL-IR the credential payload is sent inline with the
// command; otherwise the bare keyword is sent first and the payload
// follows the server's continuation request.
//
// AuthUnavail means the server rejected the command itself rather than
// the credentials, so the caller may try another mechanism. A non-nil
// error is only returned for local or transport failures, never for a
// protocol outcome.
func (c *Client) AuthenticatePlain(creds imapauth.CredentialSource) (imapauth.AuthResult, error) {
	if c.state != imapauth.ConnStateNotAuthenticated {
		return imapauth.AuthFailure, ErrAlreadyLoggedIn
	}

	username, password, err := prepareCredentials(creds)
	if err != nil {
		return imapauth.AuthFailure, err
	}

	reporter := c.options.reporter()
	reporter.Notify("Logging in...")
	defer reporter.Clear()

	buf := msgbuf.New()
	defer buf.Release()
	if _, err := internal.PlainCommand(buf, plainCommandName, username, username, password); err != nil {
		return imapauth.AuthFailure, err
	}
	// The full command is kept as an immutable value: the split branch
	// truncates the buffer to carve out the keyword and sends the
	// payload as a slice of this string
	full := buf.String()

	res := StepMore
	var status *imapauth.StatusResponse
	if c.Caps().Has(imapauth.CapSASLIR) {
		if err := c.StartCommand(full); err != nil {
			return imapauth.AuthFailure, err
		}
	} else {
		// Send the bare keyword first and the payload once the server
		// issues a continuation request. If the server rejects the
		// keyword outright, no payload is sent.
		buf.Truncate(len(plainCommandName))
		if err := c.StartCommand(buf.String()); err != nil {
			return imapauth.AuthFailure, err
		}
		for res == StepMore {
			res, status, err = c.Step()
			if err != nil {
				return imapauth.AuthFailure, err
			}
		}
		if res == StepRespond {
			cont := msgbuf.From(full[len(plainCommandName)+1:])
			cont.AppendString("\r\n")
			err := c.sendRaw(cont.Bytes())
			cont.Release()
			if err != nil {
				return imapauth.AuthFailure, err
			}
			res = StepMore
		}
	}

	for res == StepMore {
		res, status, err = c.Step()
		if err != nil {
			return imapauth.AuthFailure, err
		}
	}

	switch res {
	case StepBad:
		return imapauth.AuthUnavail, nil
	case StepNo:
		reporter.NotifyError("Login failed")
		return imapauth.AuthFailure, nil
	}

	c.state = imapauth.ConnStateAuthenticated
	// Capabilities change across authentication; keep them only if the
	// tagged status just announced the new set
	if status == nil || status.Code != "CAPABILITY" {
		c.setCaps(nil)
	}
	return imapauth.AuthSuccess, nil
}

// prepareCredentials obtains and normalizes the PLAIN fields. The PRECIS
// profile rejects an empty username and the NUL bytes the payload uses
// as field delimiters. An empty password is passed through untouched.
func prepareCredentials(creds imapauth.CredentialSource) (username, password string, err error) {
	username, err = creds.Username()
	if err != nil {
		return "", "", fmt.Errorf("imapclient: username unavailable: %v", err)
	}
	username, err = precis.OpaqueString.String(username)
	if err != nil {
		return "", "", fmt.Errorf("imapclient: normalizing username: %v", err)
	}

	password, err = creds.Password()
	if err != nil {
		return "", "", fmt.Errorf("imapclient: password unavailable: %v", err)
	}
	if password != "" {
		password, err = precis.OpaqueString.String(password)
		if err != nil {
			return "", "", fmt.Errorf("imapclient: normalizing password: %v", err)
		}
	}
	return username, password, nil
}
