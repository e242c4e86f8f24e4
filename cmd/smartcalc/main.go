package main

import "github.com/smartcalc/go-smartcalc/cmd/smartcalc/cmd"

func main() {
	cmd.Execute()
}
