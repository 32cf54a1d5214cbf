package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emersion/go-imapauth/imapclient"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "imapauth",
	Short: "check IMAP PLAIN authentication against a server",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("addr", "a", "", "server address (host:port)")
	rootCmd.PersistentFlags().String("account", "", "path to a YAML account file")
	rootCmd.PersistentFlags().Bool("debug", false, "dump the IMAP conversation to stderr")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(capsCmd)
}

// dial connects to the account's server and reads its greeting.
func dial(cmd *cobra.Command, acct *account) (*imapclient.Client, error) {
	options := &imapclient.Options{
		Reporter: &terminalReporter{w: os.Stderr},
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		options.DebugWriter = os.Stderr
	}

	client, err := imapclient.Dial(acct.Addr, options)
	if err != nil {
		return nil, err
	}
	if _, err := client.Greeting(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
