package main

import "github.com/rl1809/harbor/internal/cli"

func main() {
	cli.Execute()
}
