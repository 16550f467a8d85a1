/*
 * Copyright 2022 The Go Authors<36625090@qq.com>. All rights reserved.
 * Use of this source code is governed by a MIT-style
 * license that can be found in the LICENSE file.
 */

package option

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
)

type Http struct {
	Path       string `long:"http.path" default:"" description:"Path for the HTTP server context" `
	Address    string `long:"http.address" default:"0.0.0.0" description:"Address for the HTTP server listening" `
	Port       int    `long:"http.port" default:"8080" description:"Port for the HTTP server listening" `
	Cors       bool   `long:"http.cors" description:"Support CORS access" `
	RequestLog bool   `long:"http.requestlog" description:"Log HTTP requests" `
	Metrics    bool   `long:"http.metrics" description:"Expose prometheus metrics on /metrics" `
	BodyLimit  string `long:"http.bodylimit" default:"10M" description:"Max request body size, e.g. 4.5M" `
}

// Log logging settings
type Log struct {
	File  string `long:"log.file" default:"logs/novel.log" description:"Sets the path to log file"`
	Level string `long:"log.level" default:"info" description:"Sets the log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

// Options 服务参数选项
type Options struct {
	ConfigFile string `long:"config" env:"runConfig" description:"Toml config file for startup"`
	EnvFile    string `long:"env" default:".env" description:"Dotenv file loaded before the config"`
	Log        Log    `group:"log"`
	Http       Http   `group:"http"`
	Version    bool   `long:"version" short:"v" description:"Show the program version"`

	parser *flags.Parser
}

func NewOptions() *Options {
	var opts Options
	opts.parser = flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	return &opts
}

// Parse 解析命令行参数; 返回 flags.ErrHelp 时帮助信息已写入 out
func (m *Options) Parse(args []string, out io.Writer) error {
	_, err := m.parser.ParseArgs(args)
	if err == nil {
		return nil
	}
	if flagError, ok := err.(*flags.Error); ok && flagError.Type == flags.ErrHelp {
		m.parser.WriteHelp(out)
	}
	return err
}

// ParseOS 解析 os.Args, 帮助信息输出后直接退出
func (m *Options) ParseOS() error {
	err := m.Parse(os.Args[1:], os.Stdout)
	if IsHelp(err) {
		os.Exit(0)
	}
	return err
}

func IsHelp(err error) bool {
	flagError, ok := err.(*flags.Error)
	return ok && flagError.Type == flags.ErrHelp
}
