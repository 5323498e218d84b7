package main

import "rentdesk/internal/cli"

func main() {
	cli.Execute()
}
