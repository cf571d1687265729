package api

import (
	"os"
	"runtime"
)

type PlatformData struct {
	SdkType         string   `json:"sdkType"`
	SdkVersion      string   `json:"sdkVersion"`
	PlatformVersion string   `json:"platformVersion"`
	Platform        Platform `json:"platform"`
	Hostname        string   `json:"hostname"`
}

func (pd *PlatformData) Default(sdkVersion string, platform Platform) *PlatformData {
	pd.Platform = platform
	pd.SdkType = "bridge"
	pd.PlatformVersion = runtime.Version()
	pd.Hostname, _ = os.Hostname()
	pd.SdkVersion = sdkVersion
	return pd
}
