package conf

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var (
	mu     sync.RWMutex
	config map[string]interface{}
)

// LoadEnv 读取 dotenv 文件, 文件不存在时忽略. 已存在的环境变量不会被覆盖
func LoadEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.Wrapf(err, "load env file %s", envFile)
	}
	return nil
}

// Init 解析 toml 配置文件, 字符串值中的 ${VAR} 用环境变量展开.
// path 为空时使用环境变量 runConfig, 仍为空则配置为空
func Init(path string) error {
	if path == "" {
		path = os.Getenv("runConfig")
	}
	parsed := make(map[string]interface{})
	if path != "" {
		if _, err := toml.DecodeFile(path, &parsed); err != nil {
			return errors.Wrapf(err, "decode config %s", path)
		}
	}
	set(expand(parsed).(map[string]interface{}))
	return nil
}

// InitFromString 解析 toml 文本, 测试使用
func InitFromString(data string) error {
	parsed := make(map[string]interface{})
	if _, err := toml.Decode(data, &parsed); err != nil {
		return errors.Wrap(err, "decode config")
	}
	set(expand(parsed).(map[string]interface{}))
	return nil
}

func set(c map[string]interface{}) {
	mu.Lock()
	config = c
	mu.Unlock()
}

func expand(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = expand(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = expand(item)
		}
		return val
	case []map[string]interface{}:
		for i, item := range val {
			val[i] = expand(item).(map[string]interface{})
		}
		return val
	default:
		return v
	}
}

// Get 返回配置段的 JSON 编码, 不存在时返回 nil
func Get(key string) []byte {
	mu.RLock()
	defer mu.RUnlock()
	if config == nil {
		return nil
	}
	if value, exists := config[key]; exists {
		bytes, err := json.Marshal(value)
		if err != nil {
			return nil
		}
		return bytes
	}
	return nil
}

// GetString 读取 global 段中的字符串
func GetString(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	global, ok := config["global"].(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := global[key].(string)
	return s
}
