package main

import "object-fetcher/cmd"

func main() {
	cmd.Execute()
}
