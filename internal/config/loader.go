package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvKey 环境变量中 webhook key 的名字
const EnvKey = "WECOM_BOT_KEY"

// GetConfigDir 返回配置目录
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wecombot"
	}
	return filepath.Join(homeDir, ".wecombot")
}

// GetConfigPath 返回配置文件路径
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}

// GetLogsDir 返回日志目录
func GetLogsDir() string {
	return filepath.Join(GetConfigDir(), "logs")
}

// GetCronStorePath 返回定时任务存储文件路径
func GetCronStorePath() string {
	return filepath.Join(GetConfigDir(), "cron", "jobs.json")
}

// LoadConfig 从文件加载配置
func LoadConfig() (*Config, error) {
	configPath := GetConfigPath()

	// 配置文件不存在时返回默认配置
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig 保存配置到文件
func SaveConfig(config *Config) error {
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveKey 解析发送时使用的 webhook key。优先级：
// --key flag > 命名机器人 > WECOM_BOT_KEY 环境变量（支持 .env 文件）> 默认 key
func ResolveKey(cfg *Config, flagKey, botName string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}

	if botName != "" {
		key := cfg.GetKey(botName)
		if key == "" {
			return "", fmt.Errorf("no bot named %q in %s", botName, GetConfigPath())
		}
		return key, nil
	}

	// .env 文件可选，不存在时忽略
	_ = godotenv.Load()
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	if cfg.DefaultKey != "" {
		return cfg.DefaultKey, nil
	}

	return "", fmt.Errorf("no webhook key configured. Use --key, set %s, or run: wecombot config set-key <key>", EnvKey)
}
