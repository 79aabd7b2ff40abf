package main

import cmd "github.com/rohmanhakim/carpool/internal/cli"

func main() {
	cmd.Execute()
}
