package logs

import (
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const module = "ccurl"

var (
	logFormat = "%{color}[%{level:.4s}] %{time:15:04:05.000000} %{id:06x} [%{shortpkg}] %{longfunc} -> %{color:reset}%{message}"
	Log       = logging.MustGetLogger(module)
)

func Setup() {
	logging.SetFormatter(logging.MustStringFormatter(logFormat))
}

func SetConfig(config *viper.Viper) {
	consoleBackEnd := logging.NewLogBackend(os.Stdout, "", 0)

	level, err := logging.LogLevel(config.GetString("log.level"))
	if err != nil {
		Log.Warningf("Could not set log level to %v: %v", config.GetString("log.level"), err)
		Log.Warning("Using default log level")
		return
	}

	consoleBackEndLeveled := logging.AddModuleLevel(consoleBackEnd)
	consoleBackEndLeveled.SetLevel(level, module)

	if !config.GetBool("log.useRollingLogFile") {
		logging.SetBackend(consoleBackEndLeveled)
		return
	}

	rollingLogBackEnd := logging.NewLogBackend(&lumberjack.Logger{
		Filename:   config.GetString("log.logFile"),
		MaxSize:    config.GetInt("log.maxLogFileSize"), // megabytes
		MaxBackups: config.GetInt("log.maxLogFilesToKeep"),
		Compress:   true,
	}, "", 0)
	rollingLogBackEndLeveled := logging.AddModuleLevel(rollingLogBackEnd)
	rollingLogBackEndLeveled.SetLevel(level, module)

	errorRollingLogBackEnd := logging.NewLogBackend(&lumberjack.Logger{
		Filename:   config.GetString("log.criticalErrorsLogFile"),
		MaxSize:    1, // megabytes
		MaxBackups: 1,
	}, "", 0)

	// Only critical messages go to the error file
	errorRollingLogBackEndLeveled := logging.AddModuleLevel(errorRollingLogBackEnd)
	errorRollingLogBackEndLeveled.SetLevel(logging.CRITICAL, module)

	logging.SetBackend(consoleBackEndLeveled, rollingLogBackEndLeveled, errorRollingLogBackEndLeveled)
}
