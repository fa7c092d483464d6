package main

import "movieverse/cmd/moviectl/cmd"

func main() {
	cmd.Execute()
}
