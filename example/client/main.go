package main

import (
	"context"
	"log"
	"os"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/client"
)

// Run cmd/tpa-bridge first, then point BRIDGE_URL at it.
func main() {
	bridgeURL := os.Getenv("BRIDGE_URL")
	if bridgeURL == "" {
		bridgeURL = "http://127.0.0.1:8723"
	}

	c, err := client.NewClient(bridgeURL, nil)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	err = c.Initialize(ctx, "https://mytpainstance.tpa.io/", "project-uuid", map[string]interface{}{
		"crashHandling":           "alwaysAsk",
		"isNonFatalIssuesEnabled": true,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := c.TrackEventWithTags(ctx, "checkout", "pay", api.Tags{"method": "card"}); err != nil {
		log.Printf("track event: %v", err)
	}

	identifier, err := c.StartTimingEvent(ctx, "network", "fetch")
	if err != nil {
		log.Fatal(err)
	}
	if err := c.TrackTimingEvent(ctx, identifier); err != nil {
		log.Printf("track timing event: %v", err)
	}

	if _, err := os.Open("/does/not/exist"); err != nil {
		_ = c.ReportNonFatalIssueWithError(ctx, err, "", map[string]interface{}{"path": "/does/not/exist"})
	}
	_ = c.Info(ctx, "client example finished")
}
