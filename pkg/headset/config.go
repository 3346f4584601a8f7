package headset

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HeadsetConfig struct {
	WsEndpoint     string            `json:"ws_endpoint"`
	APIBaseURL     string            `json:"api_base_url"`
	Lang           string            `json:"lang"`
	DisplayName    string            `json:"display_name"`
	WsSecret       string            `json:"-"`
	Headers        map[string]string `json:"headers,omitempty"`
	DrainInterval  time.Duration     `json:"drain_interval"`
	DebugLevel     string            `json:"debug_level"`
	DebugWebsocket bool              `json:"debug_websocket"`
}

func NewHeadsetConfig() *HeadsetConfig {
	c := &HeadsetConfig{
		WsEndpoint:    "ws://localhost:8000/ws",
		APIBaseURL:    "http://localhost:8000",
		Lang:          "en",
		DrainInterval: 50 * time.Millisecond,
		DebugLevel:    "INFO",
		Headers:       make(map[string]string),
	}

	// Load from env
	c.loadFromEnv()

	return c
}

func (c *HeadsetConfig) loadFromEnv() {
	// Load .env if exists
	_ = godotenv.Load()

	if endpoint := os.Getenv("HEADSET_WS_ENDPOINT"); endpoint != "" {
		c.WsEndpoint = endpoint
	}

	if baseURL := os.Getenv("HEADSET_API_BASE_URL"); baseURL != "" {
		c.APIBaseURL = baseURL
	}

	if lang := os.Getenv("HEADSET_LANG"); lang != "" {
		c.Lang = strings.ToLower(lang)
	}

	if name := os.Getenv("HEADSET_DISPLAY_NAME"); name != "" {
		c.DisplayName = name
	}

	c.WsSecret = os.Getenv("HEADSET_WS_SECRET")

	if interval := os.Getenv("HEADSET_DRAIN_INTERVAL_MS"); interval != "" {
		if val, err := strconv.Atoi(interval); err == nil && val > 0 {
			c.DrainInterval = time.Duration(val) * time.Millisecond
		}
	}

	if level := os.Getenv("HEADSET_DEBUG_LEVEL"); level != "" {
		c.DebugLevel = strings.ToUpper(level)
	}

	c.DebugWebsocket = os.Getenv("HEADSET_DEBUG_WEBSOCKET") == "true"
}

// LogLevel maps the configured debug level onto the logger's levels.
// Unrecognized values fall back to info.
func (c *HeadsetConfig) LogLevel() LogLevel {
	switch c.DebugLevel {
	case "DEBUG":
		return DebugLevel
	case "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Validate returns list of issues
func (c *HeadsetConfig) Validate() []string {
	issues := []string{}

	if !strings.HasPrefix(c.WsEndpoint, "ws://") && !strings.HasPrefix(c.WsEndpoint, "wss://") {
		issues = append(issues, "Invalid WebSocket endpoint format (must start with ws:// or wss://)")
	}

	if c.APIBaseURL != "" && !strings.HasPrefix(c.APIBaseURL, "http") {
		issues = append(issues, "Invalid API base URL format")
	}

	if c.Lang == "" {
		issues = append(issues, "Language preference must not be empty")
	}

	validLevels := []string{"DEBUG", "INFO", "WARNING", "ERROR"}
	found := false
	for _, level := range validLevels {
		if level == c.DebugLevel {
			found = true
			break
		}
	}
	if !found {
		issues = append(issues, fmt.Sprintf("Invalid debug level: %s", c.DebugLevel))
	}

	if c.DrainInterval <= 0 {
		issues = append(issues, "Drain interval must be positive")
	}

	return issues
}

func (c *HeadsetConfig) PrintConfig() {
	fmt.Println("🥽 Headset Client Configuration")
	fmt.Println("==================================================")

	fmt.Printf("WebSocket Endpoint: %s\n", c.WsEndpoint)
	fmt.Printf("API Base URL: %s\n", c.APIBaseURL)
	fmt.Printf("Language: %s\n", c.Lang)
	if c.DisplayName != "" {
		fmt.Printf("Display Name: %s\n", c.DisplayName)
	} else {
		fmt.Println("Display Name: (auto)")
	}
	if c.WsSecret != "" {
		fmt.Println("WS Secret: SET")
	} else {
		fmt.Println("WS Secret: not set (unsigned connect)")
	}
	fmt.Printf("Drain Interval: %s\n", c.DrainInterval)
	fmt.Printf("Debug Level: %s\n", c.DebugLevel)
	fmt.Printf("Debug WebSocket: %t\n", c.DebugWebsocket)
}
