package main

import "github.com/nkarpov/balda-go/internal/cli"

func main() {
	cli.Execute()
}
