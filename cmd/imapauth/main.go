package main

import "github.com/emersion/go-imapauth/cmd/imapauth/cmd"

func main() {
	cmd.Execute()
}
