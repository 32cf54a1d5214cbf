package imapclient_test

import (
	"log"

	"github.com/emersion/go-imapauth"
	"github.com/emersion/go-imapauth/imapclient"
)

func ExampleClient() {
	c, err := imapclient.Dial("mail.example.org:143", nil)
	if err != nil {
		log.Fatalf("failed to dial IMAP server: %v", err)
	}
	defer c.Close()

	if _, err := c.Greeting(); err != nil {
		log.Fatalf("failed to read greeting: %v", err)
	}

	// Some servers announce their capabilities in the greeting, others
	// want to be asked
	if c.Caps() == nil {
		if _, err := c.Capability(); err != nil {
			log.Fatalf("failed to fetch capabilities: %v", err)
		}
	}

	res, err := c.AuthenticatePlain(imapauth.NewCredentials("root", "asdf"))
	if err != nil {
		log.Fatalf("failed to authenticate: %v", err)
	}
	switch res {
	case imapauth.AuthSuccess:
		log.Printf("logged in")
	case imapauth.AuthUnavail:
		log.Printf("server doesn't support PLAIN authentication")
	default:
		log.Printf("login failed")
	}

	if err := c.Logout(); err != nil {
		log.Fatalf("failed to logout: %v", err)
	}
}
