package main

import (
	"github.com/joho/godotenv"

	"rosinstall-gen/internal/cli"
)

func main() {
	// A .env file in the working directory may carry ROSINSTALL_GEN_*
	// settings such as the index URL and credentials.
	_ = godotenv.Load()
	cli.Execute()
}
