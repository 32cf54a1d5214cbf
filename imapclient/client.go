// Package imapclient implements a synchronous IMAP client for
// authentication exchanges.
//
// The client drives one command at a time: StartCommand writes a tagged
// command line, then Step reads one server response and classifies it as
// progress, a continuation request or a terminal status. Nothing is read
// in the background, so callers decide exactly when the connection may
// block. Higher-level methods (Capability, Noop, Logout,
// AuthenticatePlain) wrap that loop.
package imapclient

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/emersion/go-imapauth"
	"github.com/emersion/go-imapauth/internal"
	"github.com/emersion/go-imapauth/internal/imapwire"
)

// Options contains options for Client.
type Options struct {
	// Raw ingress and egress data will be written to this writer, if any
	DebugWriter io.Writer
	// Reporter receives user-visible status messages, if any
	Reporter imapauth.StatusReporter
}

func (options *Options) wrapReadWriter(rw io.ReadWriter) io.ReadWriter {
	if options.DebugWriter == nil {
		return rw
	}
	return struct {
		io.Reader
		io.Writer
	}{
		Reader: io.TeeReader(rw, options.DebugWriter),
		Writer: io.MultiWriter(rw, options.DebugWriter),
	}
}

func (options *Options) reporter() imapauth.StatusReporter {
	if options.Reporter == nil {
		return imapauth.NopReporter{}
	}
	return options.Reporter
}

// Client is an IMAP client.
//
// The client is not safe for concurrent use: exactly one command is in
// flight at a time, and all methods block until the server has made
// enough progress to answer.
type Client struct {
	conn    net.Conn
	options Options
	br      *bufio.Reader
	bw      *bufio.Writer
	dec     *imapwire.Decoder

	state      imapauth.ConnState
	caps       imapauth.CapSet
	cmdTag     uint64
	pendingTag string
}

// New creates a new IMAP client over conn.
//
// This function doesn't perform I/O: the server greeting is read by
// Greeting.
//
// A nil options pointer is equivalent to a zero options value.
func New(conn net.Conn, options *Options) *Client {
	if options == nil {
		options = &Options{}
	}

	rw := options.wrapReadWriter(conn)
	br := bufio.NewReader(rw)
	bw := bufio.NewWriter(rw)

	return &Client{
		conn:    conn,
		options: *options,
		br:      br,
		bw:      bw,
		dec:     imapwire.NewDecoder(br),
		state:   imapauth.ConnStateNone,
	}
}

// Dial connects to an IMAP server over plain TCP.
//
// Callers that want implicit TLS can establish the connection themselves
// and pass it to New.
func Dial(address string, options *Options) (*Client, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, err
	}
	return New(conn, options), nil
}

// Close immediately closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// State returns the current connection state.
func (c *Client) State() imapauth.ConnState {
	return c.state
}

// Caps returns the capabilities advertised by the server, or nil when
// none have been advertised yet. Successful authentication invalidates
// the set, because capabilities change across authentication.
func (c *Client) Caps() imapauth.CapSet {
	return c.caps
}

func (c *Client) setCaps(caps imapauth.CapSet) {
	c.caps = caps
}

// Greeting reads the server greeting.
//
// An OK greeting leaves the connection in the not-authenticated state, a
// PREAUTH greeting in the authenticated state. A BYE greeting means the
// server refused the connection and is returned as an *imapauth.Error.
// Capabilities carried in the greeting's response code are recorded.
func (c *Client) Greeting() (*imapauth.StatusResponse, error) {
	if c.state != imapauth.ConnStateNone {
		return nil, fmt.Errorf("imapclient: greeting already received")
	}

	var typ string
	if !c.dec.ExpectSpecial('*') || !c.dec.ExpectSP() || !c.dec.ExpectAtom(&typ) {
		return nil, fmt.Errorf("imapclient: in greeting: %v", c.dec.Err())
	}
	status, err := c.readStatusRest(typ)
	if err != nil {
		return nil, fmt.Errorf("imapclient: in greeting: %v", err)
	}

	switch status.Type {
	case imapauth.StatusResponseTypeOK:
		c.state = imapauth.ConnStateNotAuthenticated
	case imapauth.StatusResponseTypePreAuth:
		c.state = imapauth.ConnStateAuthenticated
	case imapauth.StatusResponseTypeBye:
		c.state = imapauth.ConnStateLogout
		return nil, (*imapauth.Error)(status)
	default:
		return nil, fmt.Errorf("imapclient: unexpected greeting %q", typ)
	}
	return status, nil
}

// StepResult is the progress state of the command in flight, as reported
// by Step.
type StepResult int

const (
	// StepMore means the response carried no final status for the
	// command: call Step again.
	StepMore StepResult = iota
	// StepRespond means the server requested continuation data. The
	// caller must send it before stepping further.
	StepRespond
	// StepOK means the command completed successfully.
	StepOK
	// StepNo means the server explicitly rejected the command.
	StepNo
	// StepBad means the server doesn't support the command or considers
	// it malformed.
	StepBad
)

// String implements fmt.Stringer.
func (res StepResult) String() string {
	switch res {
	case StepMore:
		return "more"
	case StepRespond:
		return "respond"
	case StepOK:
		return "ok"
	case StepNo:
		return "no"
	case StepBad:
		return "bad"
	default:
		panic(fmt.Errorf("imapclient: unknown step result %v", int(res)))
	}
}

// StartCommand allocates a tag, writes the tagged command line and
// flushes it. The command is then driven to completion by calling Step
// until it reports a terminal result. Only one command may be in flight
// at a time.
func (c *Client) StartCommand(text string) error {
	if c.pendingTag != "" {
		return fmt.Errorf("imapclient: command %v still in flight", c.pendingTag)
	}

	c.cmdTag++
	tag := fmt.Sprintf("T%v", c.cmdTag)
	if _, err := c.bw.WriteString(tag + " " + text + "\r\n"); err != nil {
		return err
	}
	if err := c.bw.Flush(); err != nil {
		return err
	}
	c.pendingTag = tag
	return nil
}

// Step reads exactly one response line for the command in flight and
// classifies it.
//
// Untagged data is recorded where the client understands it (CAPABILITY,
// BYE) and skipped otherwise; both yield StepMore. A continuation
// request yields StepRespond. The command's tagged status yields StepOK,
// StepNo or StepBad together with the parsed status response; the status
// is nil for all other results.
func (c *Client) Step() (StepResult, *imapauth.StatusResponse, error) {
	if c.pendingTag == "" {
		return StepMore, nil, fmt.Errorf("imapclient: no command in flight")
	}

	// continue-req
	if c.dec.Special('+') {
		var text string
		if c.dec.SP() {
			c.dec.Text(&text)
		}
		if !c.dec.ExpectCRLF() {
			return StepMore, nil, fmt.Errorf("imapclient: in continue-req: %v", c.dec.Err())
		}
		// SASL challenges are the only continuation data in this client's
		// scope; reject anything that isn't transport-encoded
		if _, err := internal.DecodeSASL(text); err != nil {
			return StepMore, nil, fmt.Errorf("imapclient: in continue-req: %v", err)
		}
		return StepRespond, nil, nil
	}

	// response-data
	if c.dec.Special('*') {
		if err := c.readUntagged(); err != nil {
			return StepMore, nil, fmt.Errorf("imapclient: in response-data: %v", err)
		}
		return StepMore, nil, nil
	}

	// response-tagged
	var tag, typ string
	if !c.dec.ExpectAtom(&tag) || !c.dec.ExpectSP() || !c.dec.ExpectAtom(&typ) {
		return StepMore, nil, fmt.Errorf("imapclient: in response: %v", c.dec.Err())
	}
	status, err := c.readStatusRest(typ)
	if err != nil {
		return StepMore, nil, fmt.Errorf("imapclient: in response-tagged: %v", err)
	}
	if tag != c.pendingTag {
		return StepMore, nil, fmt.Errorf("imapclient: received response for unknown tag %v", tag)
	}
	c.pendingTag = ""

	switch status.Type {
	case imapauth.StatusResponseTypeOK:
		return StepOK, status, nil
	case imapauth.StatusResponseTypeNo:
		return StepNo, status, nil
	case imapauth.StatusResponseTypeBad:
		return StepBad, status, nil
	default:
		return StepMore, nil, fmt.Errorf("imapclient: expected OK, NO or BAD status condition, but got %v", typ)
	}
}

// readUntagged consumes one untagged response after its leading "*".
func (c *Client) readUntagged() error {
	if !c.dec.ExpectSP() {
		return c.dec.Err()
	}
	var typ string
	if !c.dec.ExpectAtom(&typ) {
		return c.dec.Err()
	}

	switch imapauth.StatusResponseType(typ) {
	case imapauth.StatusResponseTypeOK, imapauth.StatusResponseTypeNo,
		imapauth.StatusResponseTypeBad, imapauth.StatusResponseTypePreAuth:
		_, err := c.readStatusRest(typ)
		return err
	case imapauth.StatusResponseTypeBye:
		// The server is closing the connection, either unilaterally or
		// in response to LOGOUT
		c.state = imapauth.ConnStateLogout
		_, err := c.readStatusRest(typ)
		return err
	}

	if typ == "CAPABILITY" { // capability-data
		caps, err := readCapabilities(c.dec)
		if err != nil {
			return err
		}
		c.setCaps(caps)
		if !c.dec.ExpectCRLF() {
			return c.dec.Err()
		}
		return nil
	}

	// Anything else (EXISTS, RECENT, FLAGS, ...) is outside this
	// client's scope
	if !c.dec.DiscardLine() {
		return c.dec.Err()
	}
	return nil
}

// readStatusRest reads the remainder of a status response after its type
// atom: the optional response code, the text and the line terminator.
// Capabilities carried in a CAPABILITY response code are recorded.
func (c *Client) readStatusRest(typ string) (*imapauth.StatusResponse, error) {
	status := &imapauth.StatusResponse{Type: imapauth.StatusResponseType(typ)}

	if !c.dec.ExpectSP() {
		return nil, c.dec.Err()
	}

	if c.dec.Special('[') { // resp-text-code
		var code string
		if !c.dec.ExpectAtom(&code) {
			return nil, fmt.Errorf("in resp-text-code: %v", c.dec.Err())
		}
		status.Code = imapauth.ResponseCode(code)
		switch code {
		case "CAPABILITY": // capability-data
			caps, err := readCapabilities(c.dec)
			if err != nil {
				return nil, err
			}
			c.setCaps(caps)
		default: // [SP 1*<any TEXT-CHAR except "]">]
			if c.dec.SP() {
				c.dec.Skip(']')
			}
		}
		if !c.dec.ExpectSpecial(']') || !c.dec.ExpectSP() {
			return nil, fmt.Errorf("in resp-text: %v", c.dec.Err())
		}
	}

	if !c.dec.ExpectText(&status.Text) {
		return nil, fmt.Errorf("in resp-text: %v", c.dec.Err())
	}
	if !c.dec.ExpectCRLF() {
		return nil, c.dec.Err()
	}
	return status, nil
}

// sendRaw writes bytes to the connection without a tag and flushes them.
// Continuation data is sent this way.
func (c *Client) sendRaw(b []byte) error {
	if _, err := c.bw.Write(b); err != nil {
		return err
	}
	return c.bw.Flush()
}

// execute drives a complete command exchange and returns its tagged
// status. A NO or BAD status is returned as an *imapauth.Error.
func (c *Client) execute(text string) (*imapauth.StatusResponse, error) {
	if err := c.StartCommand(text); err != nil {
		return nil, err
	}
	for {
		res, status, err := c.Step()
		if err != nil {
			return nil, err
		}
		switch res {
		case StepMore:
			// keep stepping
		case StepRespond:
			return nil, fmt.Errorf("imapclient: unexpected continuation request")
		case StepOK:
			return status, nil
		default: // StepNo, StepBad
			return status, (*imapauth.Error)(status)
		}
	}
}

// Noop sends a NOOP command.
func (c *Client) Noop() error {
	_, err := c.execute("NOOP")
	return err
}

// Logout sends a LOGOUT command and closes the connection.
//
// This command informs the server that the client is done with the
// connection.
func (c *Client) Logout() error {
	if c.state == imapauth.ConnStateLogout {
		return fmt.Errorf("imapclient: already logged out")
	}
	if _, err := c.execute("LOGOUT"); err != nil {
		c.conn.Close()
		return err
	}
	c.state = imapauth.ConnStateLogout
	return c.Close()
}
