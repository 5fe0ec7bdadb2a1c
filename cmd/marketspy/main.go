package main

import (
	"marketspy/cmd/handlers"
	"marketspy/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
