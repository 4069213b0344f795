package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ErrCodeNotFound 表示显式指定的配置文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeMissingAPIKey 表示合并后仍然没有 api_key。
	ErrCodeMissingAPIKey = "config_missing_api_key"
)

const (
	// DefaultLanguage 是语言的最终默认值（CLI 与配置文件都未指定时）。
	DefaultLanguage = "en"
	// DefaultBaseURL 指向唯一存活过的官方镜像。
	DefaultBaseURL = "http://thetvdb.com"
	// FileName 是配置文件的固定名字（在 cwd 下查找）。
	FileName = "gotvdb.yaml"
)

// CLIArgs 只包含 CLI 暴露的入口项，并保留“是否显式指定”的信息，
// 保证覆盖优先级可实现（CLI > 配置文件 > 默认值）。
type CLIArgs struct {
	ConfigPath string

	Language    string
	LanguageSet bool

	CacheDir    string
	CacheDirSet bool
}

// FileConfig 对应 gotvdb.yaml 的解析结构。
type FileConfig struct {
	APIKey     string       `yaml:"api_key"`
	Language   string       `yaml:"language"`
	CacheDir   string       `yaml:"cache_dir"`
	BaseURL    string       `yaml:"base_url"`
	IgnoreCase bool         `yaml:"ignore_case"`
	Proxy      *ProxyConfig `yaml:"proxy"`
}

type ProxyConfig struct {
	URL string `yaml:"url"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
//（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	APIKey     string
	Language   string
	CacheDir   string
	BaseURL    string
	IgnoreCase bool
	ProxyURL   string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeMissingAPIKey:
		return fmt.Sprintf("%s：配置文件 %q 缺少必填字段 api_key", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 config path：必须可读，不存在即报错
// 2) CLI 未提供：尝试读取 <cwd>/gotvdb.yaml（可选，不存在不报错）
//
// 覆盖优先级（固定）：
// - language / cache_dir：CLI > config > 默认
// - 其他字段：仅由 config 控制（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	var (
		cfgPath string
		fc      FileConfig
	)

	if strings.TrimSpace(cli.ConfigPath) != "" {
		cfgPath = cli.ConfigPath
		if !filepath.IsAbs(cfgPath) {
			cfgPath = filepath.Join(cwd, cfgPath)
		}
		exists, err := readFileConfig(cfgPath, &fc)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		if !exists {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
	} else {
		cfgPath = filepath.Join(cwd, FileName)
		if _, err := readFileConfig(cfgPath, &fc); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}

	return merge(cli, fc, cfgPath)
}

func readFileConfig(path string, fc *FileConfig) (exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return true, err
	}
	return true, nil
}

func merge(cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	apiKey := strings.TrimSpace(fc.APIKey)
	if apiKey == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeMissingAPIKey, Path: cfgPath}
	}

	// language：CLI > config > 默认
	lang := DefaultLanguage
	if cli.LanguageSet {
		lang = cli.Language
	} else if strings.TrimSpace(fc.Language) != "" {
		lang = strings.TrimSpace(fc.Language)
	}

	// cache_dir：CLI > config > 默认（平台 temp 目录下的 gotvdb/）
	cacheDir := filepath.Join(os.TempDir(), "gotvdb")
	if cli.CacheDirSet {
		cacheDir = cli.CacheDir
	} else if strings.TrimSpace(fc.CacheDir) != "" {
		cacheDir = strings.TrimSpace(fc.CacheDir)
	}

	baseURL := strings.TrimSpace(fc.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("base_url 无效：%q", baseURL)}
	}

	proxyURL := ""
	if fc.Proxy != nil {
		proxyURL = strings.TrimSpace(fc.Proxy.URL)
	}
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("proxy.url 无效：%w", err)}
		}
	}

	return EffectiveConfig{
		APIKey:     apiKey,
		Language:   lang,
		CacheDir:   cacheDir,
		BaseURL:    baseURL,
		IgnoreCase: fc.IgnoreCase,
		ProxyURL:   proxyURL,
	}, nil
}
