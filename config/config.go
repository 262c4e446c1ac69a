package config

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gitlab.com/semkodev/ccurl/logs"
)

const (
	DefaultConfigPath = "ccurl.config.json"

	DefaultMaxRounds = 243
	DefaultMaxLength = 81 * 243
)

/*
PRECEDENCE (Higher number overrides the others):
1. default
2. key/value store
3. config
4. env
5. flag
6. explicit call to Set
*/
func Load(arguments []string) (*viper.Viper, []string, error) {
	config := viper.New()
	flags := flag.NewFlagSet("ccurl", flag.ContinueOnError)

	// 1. Get command line arguments
	flags.Bool("light", false, "Whether working on a low-memory, low CPU device. Try to optimize accordingly.")
	flags.Bool("stdin", false, "Hash one tryte string per line read from stdin and exit")

	declareCurlConfigs(flags)
	declareApiConfigs(flags)
	declareLogConfigs(flags)

	flags.Bool("database.enabled", false, "Persist computed digests")
	flags.String("database.path", "data", "Path to the database directory")
	flags.Bool("database.purge", false, "Drop all stored digests on startup")

	flags.Int("cache.size", 16, "Size of the digest cache in megabytes. 0 = off")
	flags.Int("cache.expire", 0, "Seconds after which a cached digest expires. 0 = never")

	flags.Int("sessions.max", 1024, "Maximum number of concurrently open sponge sessions")
	flags.Int("sessions.idleTimeout", 30, "Minutes after which an unused sponge session is dropped. 0 = never")

	configPath := flags.StringP("config", "c", DefaultConfigPath, "Config file path")
	if err := flags.Parse(arguments); err != nil {
		return nil, nil, err
	}
	config.BindPFlags(flags)

	// 2. Bind environment vars
	replacer := strings.NewReplacer(".", "_")
	config.SetEnvPrefix("CCURL")
	config.SetEnvKeyReplacer(replacer)
	config.AutomaticEnv()

	// 3. Load config
	if len(*configPath) > 0 {
		_, err := os.Stat(*configPath)
		if !flags.Changed("config") && os.IsNotExist(err) {
			// Standard config file not found => skip
			logs.Log.Debug("Standard config file not found. Loading default settings.")
		} else {
			logs.Log.Infof("Loading config from: %s", *configPath)
			config.SetConfigFile(*configPath)
			if err := config.ReadInConfig(); err != nil {
				return nil, nil, errors.Wrapf(err, "config could not be loaded from: %s", *configPath)
			}
		}
	}

	// 4. Check config for validity
	if err := Check(config); err != nil {
		return nil, nil, err
	}

	cfg, _ := json.MarshalIndent(config.AllSettings(), "", "  ")
	logs.Log.Debugf("Following settings loaded: \n %+v", string(cfg))

	return config, flags.Args(), nil
}

func Check(config *viper.Viper) error {
	if config.GetInt("curl.rounds") < 0 {
		return errors.Errorf("the given round count %v is negative", config.GetInt("curl.rounds"))
	}
	if config.GetInt("curl.maxRounds") < 1 || config.GetInt("api.maxLength") < 243 {
		return errors.New("curl.maxRounds must be positive and api.maxLength at least 243")
	}
	if config.GetInt("curl.rounds") > config.GetInt("curl.maxRounds") {
		return errors.Errorf("the given round count %v exceeds curl.maxRounds %v",
			config.GetInt("curl.rounds"), config.GetInt("curl.maxRounds"))
	}
	if config.GetInt("curl.length") > config.GetInt("api.maxLength") {
		return errors.Errorf("the given length %v exceeds api.maxLength %v",
			config.GetInt("curl.length"), config.GetInt("api.maxLength"))
	}
	if config.GetInt("hash.workers") <= 0 {
		config.Set("hash.workers", runtime.NumCPU())
	}
	if config.GetInt("sessions.max") < 1 {
		return errors.Errorf("at least one sponge session has to be allowed, got %v", config.GetInt("sessions.max"))
	}
	if config.GetInt("cache.size") < 0 || config.GetInt("cache.expire") < 0 {
		return errors.New("cache size and expiry must not be negative")
	}
	return nil
}

func declareCurlConfigs(flags *flag.FlagSet) {
	flags.IntP("curl.rounds", "r", 81, "Number of permutation rounds per transform")
	flags.Bool("curl.legacyRounds", false, "Always run 81 rounds, ignoring curl.rounds (legacy binding behaviour)")
	flags.Bool("curl.legacySqueeze", false, "Write every squeezed chunk to the first 243 output trits (legacy binding behaviour)")
	flags.Int("curl.length", 243, "Default number of trits squeezed per digest")
	flags.Int("curl.maxRounds", DefaultMaxRounds, "Maximum number of rounds a request may ask for")

	flags.IntP("hash.workers", "w", runtime.NumCPU(), "Number of hashing workers for batch requests")
}

func declareApiConfigs(flags *flag.FlagSet) {
	flags.Bool("api.debug", false, "Whether to log api access")

	flags.String("api.auth.username", "", "API Access Username")
	flags.String("api.auth.password", "", "API Access Password")

	flags.StringP("api.http.host", "h", "0.0.0.0", "HTTP API Host")
	flags.IntP("api.http.port", "p", 14265, "HTTP API Port")

	flags.StringSlice("api.limitRemoteAccess", nil, "Limit access to these commands from remote")
	flags.Int("api.maxBatch", 1000, "Maximum number of inputs hashed in one request")
	flags.Int("api.maxLength", DefaultMaxLength, "Maximum number of trits squeezed in one request")
}

func declareLogConfigs(flags *flag.FlagSet) {
	flags.Bool("log.hello", true, "Show welcome banner")
	flags.String("log.level", "INFO", "DEBUG, INFO, NOTICE, WARNING, ERROR or CRITICAL")

	flags.Bool("log.useRollingLogFile", false, "Enable save log messages to rolling log files")
	flags.String("log.logFile", "ccurl.log", "Path to file where log files are saved")
	flags.Int32("log.maxLogFileSize", 10, "Maximum size in megabytes for log files. Default is 10MB")
	flags.Int32("log.maxLogFilesToKeep", 1, "Maximum amount of log files to keep when a new file is created. Default is 1 file")

	flags.String("log.criticalErrorsLogFile", "ccurlCriticalErrors.log", "Path to file where critical error messages are saved")
}
