package main

import "github.com/turbolytics/seer/internal/cmd"

func main() {
	cmd.Execute()
}
