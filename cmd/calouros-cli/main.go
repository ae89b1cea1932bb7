package main

import (
	"context"

	"calouros-backend/cmd/calouros-cli/commands"
	"calouros-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "calouros-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
