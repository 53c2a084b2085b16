package main

import "github.com/clarityplus/kiosk/internal/kiosk/cli"

func main() {
	cli.Execute()
}
