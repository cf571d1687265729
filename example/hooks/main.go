package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	tpa "github.com/theperfectapp/tpa-bridge-go"
)

func main() {
	projectUUID := os.Getenv("TPA_PROJECT_UUID")

	// Strip anything that looks like an email address before it leaves the device.
	beforeHook := func(context *tpa.CallContext) error {
		for key, value := range context.Tags {
			if strings.Contains(value, "@") {
				fmt.Printf("Before hook: dropping tag %q from %s\n", key, context.Method)
				delete(context.Tags, key)
			}
		}
		if context.Category == "internal" {
			return errors.New("internal events are not tracked")
		}
		return nil
	}

	afterHook := func(context *tpa.CallContext) error {
		fmt.Printf("After hook: %s forwarded with tags %v\n", context.Method, context.Tags)
		return nil
	}

	onFinallyHook := func(context *tpa.CallContext) error {
		fmt.Printf("OnFinally hook: completed %s\n", context.Method)
		return nil
	}

	errorHook := func(context *tpa.CallContext, callError error) error {
		fmt.Printf("Error hook: %s was dropped: %v\n", context.Method, callError)
		return nil
	}

	bridge, err := tpa.NewBridge(&tpa.ConsoleSDK{}, &tpa.Options{
		CallHooks: []*tpa.CallHook{tpa.NewCallHook(beforeHook, afterHook, onFinallyHook, errorHook)},
	})
	if err != nil {
		log.Fatalf("Error creating bridge: %v", err)
	}
	if err := bridge.Initialize("https://mytpainstance.tpa.io/", projectUUID, nil); err != nil {
		log.Fatalf("Error initializing bridge: %v", err)
	}

	fmt.Println("=== Tracking with hooks ===")
	bridge.TrackEventWithTags("account", "login", tpa.Tags{"method": "sso", "user": "someone@example.com"})

	fmt.Println("\n=== Tracking a dropped event ===")
	bridge.TrackEventWithTags("internal", "cache-miss", nil)
}
