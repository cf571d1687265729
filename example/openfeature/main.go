package main

import (
	"context"
	"log"
	"os"

	"github.com/open-feature/go-sdk/pkg/openfeature"

	tpa "github.com/theperfectapp/tpa-bridge-go"
)

func main() {
	projectUUID := os.Getenv("TPA_PROJECT_UUID")
	if projectUUID == "" {
		log.Fatal("TPA_PROJECT_UUID env var not set: set it to your TPA project UUID")
	}

	bridge, err := tpa.NewBridge(&tpa.ConsoleSDK{}, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := bridge.Initialize("https://mytpainstance.tpa.io/", projectUUID, nil); err != nil {
		log.Fatal(err)
	}

	// Every evaluation made through this client is tracked as a FeatureFlag event.
	client := openfeature.NewClient("hello")
	client.AddHooks(tpa.NewOpenFeatureHook(bridge))

	evalCtx := openfeature.NewEvaluationContext("user-123", map[string]interface{}{
		"country": "DK",
	})

	details, err := client.BooleanValueDetails(context.Background(), "new-checkout", false, evalCtx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Variable results: %v\n", details)
}
