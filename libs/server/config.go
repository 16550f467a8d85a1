package server

import (
	"github.com/stardustagi/NovelServer/libs/option"
	"github.com/stardustagi/NovelServer/utils"
)

type HttpServerConfig struct {
	Port       int    `json:"port" toml:"port"`               // HTTP服务器端口
	Address    string `json:"address" toml:"address"`         // HTTP服务器主机名
	Path       string `json:"path" toml:"path"`               // HTTP服务器路径
	Cors       bool   `json:"cors" toml:"cors"`               // 是否启用CORS
	RequestLog bool   `json:"request_log" toml:"request_log"` // 是否启用请求日志
	BodyLimit  string `json:"body_limit" toml:"body_limit"`   // 请求体大小上限, 如 10M
}

// LoadHttpServerConfig 用 [http] 配置段覆盖 base, 未出现的字段保留 base 的值
func LoadHttpServerConfig(base HttpServerConfig, raw []byte) (HttpServerConfig, error) {
	return utils.MergeStruct(base, raw)
}

func ConfigFromOptions(opts *option.Options) HttpServerConfig {
	return HttpServerConfig{
		Port:       opts.Http.Port,
		Address:    opts.Http.Address,
		Path:       opts.Http.Path,
		Cors:       opts.Http.Cors,
		RequestLog: opts.Http.RequestLog,
		BodyLimit:  opts.Http.BodyLimit,
	}
}
