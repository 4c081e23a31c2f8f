package main

import "github.com/materials-commons/rosterbot/cmd/rosterbotd/cmd"

func main() {
	cmd.Execute()
}
