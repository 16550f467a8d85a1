package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stardustagi/NovelServer/libs/blob"
	"github.com/stardustagi/NovelServer/libs/conf"
	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/libs/metrics"
	"github.com/stardustagi/NovelServer/libs/option"
	"github.com/stardustagi/NovelServer/libs/server"
	"github.com/stardustagi/NovelServer/llm/clients"
	"github.com/stardustagi/NovelServer/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts := option.NewOptions()
	if err := opts.ParseOS(); err != nil {
		return err
	}
	if opts.Version {
		fmt.Println(version)
		return nil
	}

	if err := conf.LoadEnv(opts.EnvFile); err != nil {
		return err
	}
	if err := conf.Init(opts.ConfigFile); err != nil {
		return err
	}
	if err := initLogs(opts); err != nil {
		return err
	}
	defer logs.Sync()

	logger := logs.GetLogger("main")
	logger.Info("starting", zap.String("app", conf.GetString("app_name")), zap.String("version", version))

	// 凭证缺失不影响启动, 对应端点首次调用时报错
	openaiCfg, err := clients.LoadOpenAIConfig(conf.Get("openai"))
	if err != nil {
		return err
	}
	blobCfg, err := blob.LoadBlobConfig(conf.Get("blob"))
	if err != nil {
		return err
	}
	completer := clients.NewOpenAICompleter(openaiCfg)
	store := blob.NewClient(blobCfg)

	httpCfg, err := server.LoadHttpServerConfig(server.ConfigFromOptions(opts), conf.Get("http"))
	if err != nil {
		return err
	}
	backend, err := server.NewBackend(httpCfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(nil)
	backend.Use(collector.Middleware())
	if opts.Http.Metrics {
		backend.AddRootHandler(http.MethodGet, "metrics", collector.Handler())
	}

	services.RegisterAll(backend,
		services.NewCompletionService(completer, collector),
		services.NewUploadService(store, collector),
		services.NewHealthService(completer, store),
	)

	return server.NewServer(10 * time.Second).Run(backend)
}

// initLogs 命令行参数为基础, [log] 配置段覆盖其中出现的字段
func initLogs(opts *option.Options) error {
	cfg := logs.DefaultConfig()
	cfg.Filename = opts.Log.File
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(opts.Log.Level))); err == nil {
		cfg.Level = int(level)
	}
	cfg, err := logs.LoadConfig(cfg, conf.Get("log"))
	if err != nil {
		return err
	}
	logs.InitWithConfig(cfg)
	return nil
}
