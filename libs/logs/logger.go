package logs

import (
	"encoding/json"
	"os"

	"github.com/stardustagi/NovelServer/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger

type LoggerConfig struct {
	Filename   string `json:"filename" toml:"filename"`
	MaxSize    int    `json:"maxsize" toml:"maxsize"`
	MaxAge     int    `json:"maxage" toml:"maxage"`
	MaxBackups int    `json:"maxbackups" toml:"maxbackups"`
	LocalTime  bool   `json:"localtime" toml:"localtime"`
	Compress   bool   `json:"compress" toml:"compress"`
	Level      int    `json:"level" toml:"level"`
	NoConsole  bool   `json:"no_console" toml:"no_console"`
}

// DefaultConfig 未配置日志时使用
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Filename:   "logs/novel.log",
		MaxSize:    60,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
		Level:      int(zapcore.InfoLevel),
	}
}

func Init(logConfigJson []byte) {
	logConfig, err := LoadConfig(DefaultConfig(), logConfigJson)
	if err != nil {
		panic("Failed to parse log configuration: " + err.Error())
	}
	InitWithConfig(logConfig)
}

// LoadConfig 用 [log] 配置段覆盖 base, 未出现的字段保留 base 的值
func LoadConfig(base LoggerConfig, logConfigJson []byte) (LoggerConfig, error) {
	return utils.MergeStruct(base, logConfigJson)
}

func InitWithConfig(logConfig LoggerConfig) {
	level := zapcore.Level(logConfig.Level)
	if level < zapcore.DebugLevel || level > zapcore.FatalLevel {
		level = zapcore.InfoLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var cores []zapcore.Core
	if !logConfig.NoConsole {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	// 文件输出, lumberjack 负责轮转
	if logConfig.Filename != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logConfig.Filename,
			MaxSize:    logConfig.MaxSize,
			MaxBackups: logConfig.MaxBackups,
			MaxAge:     logConfig.MaxAge,
			LocalTime:  logConfig.LocalTime,
			Compress:   logConfig.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, fileWriter, level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// SetLogger 替换全局 logger, 测试中传入 zaptest logger
func SetLogger(l *zap.Logger) {
	Log = l
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func GetLogger(m string) *zap.Logger {
	if Log == nil {
		// 默认配置
		b, err := json.Marshal(DefaultConfig())
		if err != nil {
			panic("Failed to marshal logger configuration: " + err.Error())
		}
		Init(b)
	}
	return Log.With(zap.String("module", m))
}
