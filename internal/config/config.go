package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ReportConfig 报表行为配置
type ReportConfig struct {
	// KeepLastRow 删除时至少保留一行
	KeepLastRow bool `toml:"keep_last_row"`
	// RequireSelection 编辑前必须先选中该行
	RequireSelection bool `toml:"require_selection"`
	// TrendLimit 趋势图最多取最近多少条记录
	TrendLimit int `toml:"trend_limit"`
	// DailyLimit 日收入图最多取最近多少条记录
	DailyLimit int `toml:"daily_limit"`
	// MockDays 模拟数据生成的天数
	MockDays int `toml:"mock_days"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20315,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Report: ReportConfig{
			KeepLastRow:      true,
			RequireSelection: false,
			TrendLimit:       15,
			DailyLimit:       7,
			MockDays:         30,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// EnsureDataDir 确保数据目录存在
// 数据目录位于可执行文件同目录下
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 导出文件的临时目录
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// Normalized 对非法的图表窗口和模拟天数取默认值
func (r ReportConfig) Normalized() ReportConfig {
	out := r
	if out.TrendLimit <= 0 {
		out.TrendLimit = 15
	}
	if out.DailyLimit <= 0 {
		out.DailyLimit = 7
	}
	if out.MockDays <= 0 {
		out.MockDays = 30
	}
	return out
}
