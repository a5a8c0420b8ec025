package main

import (
	"embed"

	"github.com/tmervil/sere/cmd"
)

//go:embed migrations
var migrationsFS embed.FS

func main() {
	cmd.Execute(migrationsFS)
}
