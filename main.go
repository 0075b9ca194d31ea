package main

import (
	"github.com/kc3fua/keydecoder/cmd"
	"github.com/kc3fua/keydecoder/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
