package main

import "github.com/botsift/botsift-cli/cmd"

func main() {
	cmd.Execute()
}
