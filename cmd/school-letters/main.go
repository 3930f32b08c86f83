package main

import "github.com/hansol-dev/school-letters/internal/cli"

func main() {
	cli.Execute()
}
