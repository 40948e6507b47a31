package main

import "github.com/intervu-dev/intervu/internal/cli"

func main() {
	cli.Execute()
}
