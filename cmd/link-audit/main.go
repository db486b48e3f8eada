package main

import "link-audit/internal/cli"

func main() {
	cli.Execute()
}
