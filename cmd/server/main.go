package main

import (
	"github.com/joho/godotenv"

	"crewsite/internal/app/server"
)

func main() {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	server.Run()
}
