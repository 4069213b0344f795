package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写配置文件失败：%v", err)
	}
	return path
}

func TestLoadEffective_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "api_key: B43FF87DE395DF56\n")

	eff, err := LoadEffective(dir, CLIArgs{})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.APIKey != "B43FF87DE395DF56" {
		t.Fatalf("api_key 不一致：%q", eff.APIKey)
	}
	if eff.Language != DefaultLanguage {
		t.Fatalf("期望默认语言 %q，实际 %q", DefaultLanguage, eff.Language)
	}
	if eff.BaseURL != DefaultBaseURL {
		t.Fatalf("期望默认 base_url %q，实际 %q", DefaultBaseURL, eff.BaseURL)
	}
	if eff.CacheDir != filepath.Join(os.TempDir(), "gotvdb") {
		t.Fatalf("期望默认缓存目录，实际 %q", eff.CacheDir)
	}
	if eff.IgnoreCase {
		t.Fatalf("ignore_case 默认应为 false")
	}
}

func TestLoadEffective_CLIOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
api_key: KEY
language: sv
cache_dir: /var/cache/gotvdb
ignore_case: true
`)

	eff, err := LoadEffective(dir, CLIArgs{
		Language:    "en",
		LanguageSet: true,
		CacheDir:    "/tmp/other",
		CacheDirSet: true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	// 覆盖优先级：CLI > config。
	if eff.Language != "en" {
		t.Fatalf("CLI 语言应覆盖配置，实际 %q", eff.Language)
	}
	if eff.CacheDir != "/tmp/other" {
		t.Fatalf("CLI 缓存目录应覆盖配置，实际 %q", eff.CacheDir)
	}
	if !eff.IgnoreCase {
		t.Fatalf("ignore_case 应来自配置")
	}
}

func TestLoadEffective_MissingAPIKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "language: en\n")

	_, err := LoadEffective(dir, CLIArgs{})
	if Code(err) != ErrCodeMissingAPIKey {
		t.Fatalf("期望 %s，实际：%v", ErrCodeMissingAPIKey, err)
	}
}

func TestLoadEffective_NoFileNoAPIKey(t *testing.T) {
	// cwd 下没有配置文件：不报 not_found，但缺 api_key 仍然失败。
	_, err := LoadEffective(t.TempDir(), CLIArgs{})
	if Code(err) != ErrCodeMissingAPIKey {
		t.Fatalf("期望 %s，实际：%v", ErrCodeMissingAPIKey, err)
	}
}

func TestLoadEffective_ExplicitPathMustExist(t *testing.T) {
	_, err := LoadEffective(t.TempDir(), CLIArgs{ConfigPath: "no-such.yaml"})
	if Code(err) != ErrCodeNotFound {
		t.Fatalf("期望 %s，实际：%v", ErrCodeNotFound, err)
	}
}

func TestLoadEffective_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "api_key: [broken\n")

	_, err := LoadEffective(dir, CLIArgs{})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %s，实际：%v", ErrCodeInvalid, err)
	}
}

func TestLoadEffective_InvalidBaseURL(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "api_key: KEY\nbase_url: not-a-url\n")

	_, err := LoadEffective(dir, CLIArgs{})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %s，实际：%v", ErrCodeInvalid, err)
	}
}
