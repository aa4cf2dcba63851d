package main

import (
	"os"

	"go-seaport/cmd"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	os.Exit(cmd.Execute(Version))
}
