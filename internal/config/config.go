package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Google      GoogleConfig      `yaml:"google"`
	Paths       PathsConfig       `yaml:"paths"`
	Media       MediaConfig       `yaml:"media"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Session     SessionConfig     `yaml:"session"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Backend names accepted by transcriber.backend
const (
	BackendWhisper = "whisper"
	BackendOpenAI  = "openai"
	BackendGoogle  = "google"
)

type TranscriberConfig struct {
	Backend  string `yaml:"backend"`
	Language string `yaml:"language"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	UseGPU     bool   `yaml:"use_gpu"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"` // from OPENAI_API_KEY
}

type GoogleConfig struct {
	SampleRate int `yaml:"sample_rate"`
}

type PathsConfig struct {
	StateDir string `yaml:"state_dir"`
	Temp     string `yaml:"temp"`
}

type MediaConfig struct {
	Extensions []string `yaml:"extensions"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type SummarizerConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Model      string   `yaml:"model"`
	DocxExport bool     `yaml:"docx_export"`
	APIKeys    []string `yaml:"-"` // from GEMINI_API_KEYS
}

type SessionConfig struct {
	Resume bool `yaml:"resume"`
}

func (c *Config) Validate() error {
	switch c.Transcriber.Backend {
	case "":
		c.Transcriber.Backend = BackendWhisper
	case BackendWhisper, BackendOpenAI, BackendGoogle:
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	if c.Transcriber.Backend == BackendWhisper {
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	}
	if c.Transcriber.Backend == BackendOpenAI && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
	}
	if c.Summarizer.Enabled && len(c.Summarizer.APIKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEYS is required when summarizer is enabled")
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8321
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Google.SampleRate == 0 {
		c.Google.SampleRate = 16000
	}
	if c.Paths.StateDir == "" {
		c.Paths.StateDir = "data/state"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "gemini-2.5-flash"
	}
	if len(c.Media.Extensions) == 0 {
		c.Media.Extensions = []string{".mp3", ".wav", ".mp4", ".mkv", ".mov", ".flv", ".aac", ".m4a"}
	}
	for i, ext := range c.Media.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Media.Extensions[i] = ext
	}

	return nil
}

// IsMediaFile reports whether path has one of the configured media extensions.
func (c *Config) IsMediaFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Media.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
