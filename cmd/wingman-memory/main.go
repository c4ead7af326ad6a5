package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/rcliao/wingman-memory/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
