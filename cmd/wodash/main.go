// Command wodash runs the maintenance work-order reporting service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"wodash/internal/app"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wodash: %v\n", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wodash: %v\n", err)
		os.Exit(1)
	}
}
