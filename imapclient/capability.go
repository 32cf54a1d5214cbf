package imapclient

import (
	"fmt"

	"github.com/emersion/go-imapauth"
	"github.com/emersion/go-imapauth/internal/imapwire"
)

// Capability sends a CAPABILITY command.
//
// The advertised set is also recorded on the client, see Caps.
func (c *Client) Capability() (imapauth.CapSet, error) {
	if _, err := c.execute("CAPABILITY"); err != nil {
		return nil, err
	}
	return c.caps, nil
}

func readCapabilities(dec *imapwire.Decoder) (imapauth.CapSet, error) {
	caps := make(imapauth.CapSet)
	for dec.SP() {
		var name string
		if !dec.ExpectAtom(&name) {
			return caps, fmt.Errorf("in capability-data: %v", dec.Err())
		}
		caps[imapauth.Cap(name)] = struct{}{}
	}
	return caps, nil
}
