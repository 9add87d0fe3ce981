package main

import (
	"os"

	"github.com/mindease/mindease-server/internal/pkg/logger"
	"github.com/mindease/mindease-server/internal/server"
)

// @title Mind Ease API
// @version 1.0
// @description Accounts and counseling session bookings for the Mind Ease student wellness app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:4000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup functions already logged the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until SIGINT/SIGTERM or a listener failure
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
