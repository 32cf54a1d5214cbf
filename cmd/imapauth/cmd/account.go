package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// account is a server endpoint plus the credentials stored for it. The
// password may be left out of the file, in which case it is prompted
// for interactively.
type account struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// loadAccount reads an account definition from a YAML file.
func loadAccount(path string) (*account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var acct account
	if err := yaml.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("parsing account file %v: %v", path, err)
	}
	if acct.Addr == "" {
		return nil, fmt.Errorf("account file %v: missing addr", path)
	}
	return &acct, nil
}

// resolveAccount merges the account file, if one was given, with the
// command-line flags; flags win.
func resolveAccount(cmd *cobra.Command) (*account, error) {
	acct := &account{}
	if path, _ := cmd.Flags().GetString("account"); path != "" {
		var err error
		acct, err = loadAccount(path)
		if err != nil {
			return nil, err
		}
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		acct.Addr = addr
	}
	if acct.Addr == "" {
		return nil, errors.New("no server address: pass --addr or an account file")
	}
	return acct, nil
}
