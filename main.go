package main

import "github.com/vibast-solutions/ms-go-jobtrack/cmd"

func main() {
	cmd.Execute()
}
