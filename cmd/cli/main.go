package main

import "github.com/wordsiege/wordsiege-go/internal/cli"

func main() {
	cli.Execute()
}
