package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	app2 "github.com/IT-Nick/examdesk/internal/app"
)

func main() {
	log.Println("app starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := app2.NewApp(ctx, os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	if err := app.ListenAndServe(ctx); err != nil {
		log.Fatalf("app stopped with error: %v", err)
	}
	log.Println("app stopped")
}
