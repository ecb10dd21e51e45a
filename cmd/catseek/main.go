package main

import (
	"catseek/cmd/catseek/commands"
	"catseek/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
