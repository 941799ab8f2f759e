package config

// Config wecombot CLI 配置
type Config struct {
	// DefaultKey 默认使用的 webhook key
	DefaultKey string `json:"defaultKey,omitempty"`
	// Bots 命名机器人，名字到 webhook key 的映射
	Bots map[string]string `json:"bots,omitempty"`
	// TimeoutSec 请求超时秒数
	TimeoutSec int `json:"timeoutSec"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Bots:       map[string]string{},
		TimeoutSec: 10,
	}
}

// GetKey 按名字返回命名机器人的 key，名字为空时返回默认 key
func (c *Config) GetKey(name string) string {
	if name == "" {
		return c.DefaultKey
	}
	return c.Bots[name]
}
