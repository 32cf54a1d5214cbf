package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "list the capabilities advertised by the server",

	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := resolveAccount(cmd)
		if err != nil {
			return err
		}

		client, err := dial(cmd, acct)
		if err != nil {
			return err
		}
		defer client.Close()

		caps := client.Caps()
		if caps == nil {
			caps, err = client.Capability()
			if err != nil {
				return err
			}
		}
		for _, c := range caps.List() {
			fmt.Println(c)
		}
		if mechs := caps.AuthMechanisms(); len(mechs) > 0 {
			sort.Strings(mechs)
			fmt.Printf("SASL mechanisms: %v\n", strings.Join(mechs, " "))
		}

		return client.Logout()
	},
}
