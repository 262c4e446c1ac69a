package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	ccurlConfig "gitlab.com/semkodev/ccurl/config"
	"gitlab.com/semkodev/ccurl/digest"
	"gitlab.com/semkodev/ccurl/logs"
	"gitlab.com/semkodev/ccurl/sponge"
)

type Request struct {
	Command string
	Trytes  []string
	Trits   [][]int
	Length  int
	Rounds  int
	Legacy  bool
	Session string
}

type apiCall func(request Request, c *gin.Context, t time.Time)

var (
	api         *gin.Engine
	srv         *http.Server
	config      *viper.Viper
	hasher      *digest.Hasher
	sponges     *sponge.Registry
	limitAccess []string
	maxBatch    int
	maxRounds   int
	maxLength   int
	startTime   time.Time
)

var apiCalls = map[string]apiCall{}

func addAPICall(command string, implementation apiCall) {
	apiCalls[command] = implementation
}

// Setup builds the gin engine serving the command API on POST /.
func Setup(apiConfig *viper.Viper, h *digest.Hasher, registry *sponge.Registry) *gin.Engine {
	config = apiConfig
	hasher = h
	sponges = registry
	startTime = time.Now()

	if !config.GetBool("api.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	limitAccess = config.GetStringSlice("api.limitRemoteAccess")
	logs.Log.Debug("Limited remote access to:", limitAccess)
	maxBatch = config.GetInt("api.maxBatch")
	maxRounds = config.GetInt("curl.maxRounds")
	if maxRounds <= 0 {
		maxRounds = ccurlConfig.DefaultMaxRounds
	}
	maxLength = config.GetInt("api.maxLength")
	if maxLength <= 0 {
		maxLength = ccurlConfig.DefaultMaxLength
	}

	api = gin.New()
	api.Use(gin.Recovery())
	if config.GetBool("api.debug") {
		api.Use(gin.Logger())
	}

	username := config.GetString("api.auth.username")
	password := config.GetString("api.auth.password")
	if len(username) > 0 && len(password) > 0 {
		api.Use(gin.BasicAuth(gin.Accounts{username: password}))
	}

	api.POST("/", func(c *gin.Context) {
		t := time.Now()
		var request Request
		if err := c.ShouldBindJSON(&request); err != nil {
			logs.Log.Error("ERROR request", err)
			ReplyError("Wrongly formed JSON", c)
			return
		}

		if triesToAccessLimited(request.Command, c) {
			logs.Log.Warningf("Denying limited command request %v from remote %v",
				request.Command, c.Request.RemoteAddr)
			ReplyError("Limited remote command access", c)
			return
		}

		implementation, found := apiCalls[request.Command]
		if !found {
			logs.Log.Error("Unknown command", request.Command)
			ReplyError("No known command provided", c)
			return
		}
		implementation(request, c, t)
	})

	return api
}

func Start(apiConfig *viper.Viper, h *digest.Hasher, registry *sponge.Registry) {
	Setup(apiConfig, h, registry)

	srv = &http.Server{
		Addr:    config.GetString("api.http.host") + ":" + config.GetString("api.http.port"),
		Handler: api,
	}
	logs.Log.Infof("API listening on %v", srv.Addr)
	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Log.Fatal("API Server Error", err)
		}
	}()
}

func End() {
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logs.Log.Error("API Server Shutdown Error:", err)
		}
		logs.Log.Info("API Server exiting...")
	}
}

func ReplyError(message string, c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": message,
	})
}

func getDuration(t time.Time) float64 {
	return time.Now().Sub(t).Seconds()
}

func triesToAccessLimited(command string, c *gin.Context) bool {
	remote := c.Request.RemoteAddr
	if strings.HasPrefix(remote, "127.0.0.1") || strings.HasPrefix(remote, "[::1]") {
		return false
	}
	for _, l := range limitAccess {
		if l == command {
			return true
		}
	}
	return false
}
