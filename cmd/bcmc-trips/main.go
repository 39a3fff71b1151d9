package main

import "github.com/pfrederiksen/bcmc-trips/internal/cli"

func main() {
	cli.Execute()
}
