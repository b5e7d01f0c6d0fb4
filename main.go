package main

import (
	"tnb-api/core/logger"
	"tnb-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("main: server exited", "error", err)
	}
}
