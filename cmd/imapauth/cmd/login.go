package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emersion/go-imapauth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "check that the stored or prompted credentials are accepted",

	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := resolveAccount(cmd)
		if err != nil {
			return err
		}
		if user, _ := cmd.Flags().GetString("user"); user != "" {
			acct.Username = user
		}

		client, err := dial(cmd, acct)
		if err != nil {
			return err
		}
		defer client.Close()

		// Some servers announce their capabilities in the greeting,
		// others want to be asked
		if client.Caps() == nil {
			if _, err := client.Capability(); err != nil {
				return err
			}
		}

		var creds imapauth.CredentialSource
		if acct.Password != "" {
			creds = imapauth.NewCredentials(acct.Username, acct.Password)
		} else {
			creds = &promptCredentials{username: acct.Username}
		}

		res, err := client.AuthenticatePlain(creds)
		if err != nil {
			return err
		}
		switch res {
		case imapauth.AuthSuccess:
			fmt.Printf("%v: login succeeded\n", acct.Addr)
		case imapauth.AuthUnavail:
			return fmt.Errorf("%v: server does not support PLAIN authentication", acct.Addr)
		default:
			return fmt.Errorf("%v: login failed", acct.Addr)
		}

		return client.Logout()
	},
}

func init() {
	loginCmd.Flags().StringP("user", "u", "", "username to authenticate as")
}
