package main

import (
	"os"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.Logger().Error().Err(err).Msg("tina-api exited")
		os.Exit(1)
	}
}
