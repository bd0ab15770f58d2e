package main

import "scribe/cmd/scribe/cmd"

func main() {
	cmd.Execute()
}
