package main

import (
	"log"
	"os"
	"time"

	tpa "github.com/theperfectapp/tpa-bridge-go"
	"github.com/theperfectapp/tpa-bridge-go/api"
)

func main() {
	projectUUID := os.Getenv("TPA_PROJECT_UUID")
	if projectUUID == "" {
		log.Fatal("TPA_PROJECT_UUID env var not set: set it to your TPA project UUID")
	}

	events := make(chan api.ClientEvent, 10)
	bridge, err := tpa.NewBridge(&tpa.ConsoleSDK{}, &tpa.Options{
		Platform:           api.Platform_Go,
		ClientEventHandler: events,
	})
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		for e := range events {
			log.Println(e.EventType, e.Status)
		}
	}()

	err = bridge.Initialize("https://mytpainstance.tpa.io/", projectUUID, tpa.NewStruct(map[string]interface{}{
		"loggingDestination": "console",
		"tpaDebugLog":        true,
		"feedbackInvocation": "enabled",
	}))
	if err != nil {
		log.Fatal(err)
	}

	bridge.TrackScreenAppearing("Home", nil)
	identifier := bridge.NewTimingEventIdentifier()
	bridge.StartTimingEvent(identifier, time.Now().UnixMilli(), "network", "fetch")
	time.Sleep(120 * time.Millisecond)
	bridge.TrackTimingEventWithTags(identifier, time.Now().UnixMilli(), tpa.Tags{"status": "200"})
	bridge.ReportNonFatalIssue("main.main()", "unexpected state", tpa.NewStruct(map[string]interface{}{"retries": 3}))
	bridge.StartFeedback()
	bridge.Log("info", "done")
	bridge.TrackScreenDisappearing("Home", nil)
}
