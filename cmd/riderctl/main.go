package main

import "github.com/plunoo/riderapp/cmd/riderctl/cmd"

func main() {
	cmd.Execute()
}
