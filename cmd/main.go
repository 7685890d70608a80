package main

import (
	"os"

	"tg-quiz-webapp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
