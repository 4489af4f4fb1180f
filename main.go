package main

import (
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
