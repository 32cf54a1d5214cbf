// Package internal contains glue shared by the imapauth packages.
package internal

import (
	"encoding/base64"

	"github.com/emersion/go-imapauth/msgbuf"
	"github.com/emersion/go-sasl"
)

func EncodeSASL(b []byte) string {
	if len(b) == 0 {
		return "="
	} else {
		return base64.StdEncoding.EncodeToString(b)
	}
}

func DecodeSASL(s string) ([]byte, error) {
	if s == "=" {
		// go-sasl treats nil as no challenge/response, so return a non-nil
		// empty byte slice
		return []byte{}, nil
	} else {
		return base64.StdEncoding.DecodeString(s)
	}
}

// PlainCommand formats a complete authentication command for the PLAIN
// mechanism into buf: the command name, a space and the transport-encoded
// initial response. It returns the number of bytes written.
func PlainCommand(buf *msgbuf.Buffer, name, identity, username, password string) (int, error) {
	client := sasl.NewPlainClient(identity, username, password)
	_, ir, err := client.Start()
	if err != nil {
		return 0, err
	}
	return buf.Printf("%s %s", name, EncodeSASL(ir)), nil
}
