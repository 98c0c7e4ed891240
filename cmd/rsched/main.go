package main

import "github.com/rsched/rsched/cmd/rsched/cmd"

func main() {
	cmd.Execute()
}
