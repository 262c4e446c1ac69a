package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/semkodev/ccurl/crypt"
	"gitlab.com/semkodev/ccurl/utils"
)

const (
	appName    = "ccurl"
	appVersion = "0.1.0"
)

func init() {
	addAPICall("getNodeInfo", getNodeInfo)
}

func getNodeInfo(request Request, c *gin.Context, t time.Time) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	hashing := hasher.Stats()
	defaults := hasher.Defaults()

	c.JSON(http.StatusOK, gin.H{
		"appName":                appName,
		"appVersion":             appVersion,
		"availableProcessors":    runtime.NumCPU(),
		"currentRoutines":        runtime.NumGoroutine(),
		"allocatedMemory":        stats.Sys,
		"rounds":                 defaults.Rounds,
		"length":                 defaults.Length,
		"legacyRounds":           defaults.Mode&crypt.CompatFixedRounds != 0,
		"legacySqueeze":          defaults.Mode&crypt.CompatSqueezeWindow != 0,
		"maxRounds":              maxRounds,
		"maxLength":              maxLength,
		"activeSponges":          sponges.Len(),
		"hashed":                 hashing.Hashed,
		"cacheEntries":           hashing.CacheEntries,
		"cacheHits":              hashing.CacheHits,
		"storedDigests":          hashing.Stored,
		"startTime":              startTime.Unix(),
		"startTimeHumanReadable": utils.GetHumanReadableTime(int(startTime.Unix())),
		"time":                   time.Now().Unix(),
		"duration":               getDuration(t),
	})
}
