package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "xiangqi/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type ServerConfig struct {
	Addr        string `json:"addr"`
	WebDir      string `json:"web_dir"`
	OpenBrowser bool   `json:"open_browser"`
	LogRequests bool   `json:"log_requests"`
}

type EngineConfig struct {
	Depth  int    `json:"depth"`   // 1..3
	AISide string `json:"ai_side"` // "red" / "black"
}

type SelfplayConfig struct {
	Games    int `json:"games"`
	Parallel int `json:"parallel"`
}

// 终端界面配色，取 256 色调色板下标
type ConfigColors struct {
	BoardColor    int `json:"board"`
	LineColor     int `json:"line"`
	RedColor      int `json:"red"`
	BlackColor    int `json:"black"`
	CursorColorBG int `json:"cursor_bg"`
	SelectedBG    int `json:"selected_bg"`
	LastMoveBG    int `json:"last_move_bg"`
}

type Theme struct {
	Colors ConfigColors `json:"colors"`
	// 用汉字棋子（帥/將…）而不是字母
	HanziPieces bool `json:"hanzi_pieces"`
}

type Config struct {
	Server   ServerConfig   `json:"server"`
	Engine   EngineConfig   `json:"engine"`
	Selfplay SelfplayConfig `json:"selfplay"`
	Theme    Theme          `json:"theme"`
}

// InitConfig 在 XDG 配置目录里找 xiangqi/config.json，找不到就用默认值
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		c := DefaultConfig
		return &c, nil
	}
	return Load(absPath)
}

// Load 读指定文件，文件里没写的字段保留默认值
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Engine.Depth < 1 || c.Engine.Depth > 3 {
		return &InvalidConfig{fmt.Sprintf("engine depth %d not in 1..3", c.Engine.Depth)}
	}
	if c.Engine.AISide != "red" && c.Engine.AISide != "black" {
		return &InvalidConfig{fmt.Sprintf("ai_side %q must be red or black", c.Engine.AISide)}
	}
	if c.Selfplay.Games < 0 || c.Selfplay.Parallel < 1 {
		return &InvalidConfig{"selfplay needs games >= 0 and parallel >= 1"}
	}
	for _, v := range []int{
		c.Theme.Colors.BoardColor, c.Theme.Colors.LineColor, c.Theme.Colors.RedColor, c.Theme.Colors.BlackColor,
		c.Theme.Colors.CursorColorBG, c.Theme.Colors.SelectedBG, c.Theme.Colors.LastMoveBG,
	} {
		if v < 0 || v > 255 {
			return &InvalidConfig{fmt.Sprintf("palette color %d not in 0..255", v)}
		}
	}
	return nil
}

// Save 写回 XDG 配置目录，返回写入的路径
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filePath, err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
