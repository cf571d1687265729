package tpa

import (
	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

type Configuration = api.Configuration
type Tags = api.Tags
type NonFatalIssue = api.NonFatalIssue
type Platform = api.Platform
type PlatformData = api.PlatformData
type ClientEvent = api.ClientEvent
type Call = api.Call
type CallResult = api.CallResult
type LogLevel = api.LogLevel
type Logger = util.Logger
type DiscardLogger = util.DiscardLogger

func SetLogger(log Logger) { util.SetLogger(log) }
