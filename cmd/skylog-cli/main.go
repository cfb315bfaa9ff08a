package main

import "skylog/cmd/skylog-cli/cmd"

func main() {
	cmd.Execute()
}
