package main

import "github.com/mvp-joe/kinship/internal/cli"

func main() {
	cli.Execute()
}
