package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wenluo/gotvdb"
	"github.com/wenluo/gotvdb/internal/config"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	switch args[0] {
	case "search", "show", "episode":
		if code := runCmd(args[0], args[1:]); code != 0 {
			os.Exit(code)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

type cmdArgs struct {
	Arg string // 检索词或 id

	ConfigPath string

	Language    string
	LanguageSet bool

	CacheDir    string
	CacheDirSet bool

	Full    bool // show：是否 Update 后列出全部季/集
	Verbose bool
}

func parseArgs(args []string) (cmdArgs, error) {
	ca := cmdArgs{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--lang":
			if i+1 >= len(args) {
				return cmdArgs{}, fmt.Errorf("--lang 需要一个值")
			}
			i++
			ca.Language = args[i]
			ca.LanguageSet = true
		case strings.HasPrefix(a, "--lang="):
			ca.Language = strings.TrimPrefix(a, "--lang=")
			ca.LanguageSet = true
		case a == "--cache-dir":
			if i+1 >= len(args) {
				return cmdArgs{}, fmt.Errorf("--cache-dir 需要一个值")
			}
			i++
			ca.CacheDir = args[i]
			ca.CacheDirSet = true
		case strings.HasPrefix(a, "--cache-dir="):
			ca.CacheDir = strings.TrimPrefix(a, "--cache-dir=")
			ca.CacheDirSet = true
		case a == "--config":
			if i+1 >= len(args) {
				return cmdArgs{}, fmt.Errorf("--config 需要一个值")
			}
			i++
			ca.ConfigPath = args[i]
		case strings.HasPrefix(a, "--config="):
			ca.ConfigPath = strings.TrimPrefix(a, "--config=")
		case a == "--full":
			ca.Full = true
		case a == "-v" || a == "--verbose":
			ca.Verbose = true
		case strings.HasPrefix(a, "-"):
			return cmdArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ca.Arg != "" {
				return cmdArgs{}, fmt.Errorf("重复的参数：%q 与 %q", ca.Arg, a)
			}
			ca.Arg = a
		}
	}

	if ca.Arg == "" {
		return cmdArgs{}, fmt.Errorf("缺少检索词或 id")
	}
	return ca, nil
}

func runCmd(cmd string, args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage()
			return 0
		}
	}

	ca, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		ConfigPath:  ca.ConfigPath,
		Language:    ca.Language,
		LanguageSet: ca.LanguageSet,
		CacheDir:    ca.CacheDir,
		CacheDirSet: ca.CacheDirSet,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	level := zerolog.WarnLevel
	if ca.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	db, err := gotvdb.New(gotvdb.Config{
		APIKey:     eff.APIKey,
		BaseURL:    eff.BaseURL,
		CacheDir:   eff.CacheDir,
		IgnoreCase: eff.IgnoreCase,
		ProxyURL:   eff.ProxyURL,
		Logger:     &log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败：%v\n", err)
		return 1
	}
	defer db.Close()

	ctx := context.Background()
	switch cmd {
	case "search":
		return searchCmd(ctx, db, ca.Arg, eff.Language)
	case "show":
		return showCmd(ctx, db, ca.Arg, eff.Language, ca.Full)
	case "episode":
		return episodeCmd(ctx, db, ca.Arg, eff.Language)
	}
	return 2
}

func searchCmd(ctx context.Context, db *gotvdb.TVDB, name, lang string) int {
	result, err := db.Search(ctx, name, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "检索失败：%v\n", err)
		return 1
	}
	for _, s := range result.Shows() {
		aired := ""
		if d, ok := s.FirstAired(); ok {
			aired = d.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%d\t%s\t%s\n", s.ID(), s.SeriesName(), aired)
	}
	return 0
}

func showCmd(ctx context.Context, db *gotvdb.TVDB, arg, lang string, full bool) int {
	id, err := gotvdb.ParseID(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	show, err := db.Get(ctx, id, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取失败：%v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "%d\t%s\n", show.ID(), show.SeriesName())

	if !full {
		return 0
	}
	if err := show.Update(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "更新失败：%v\n", err)
		return 1
	}
	for _, season := range show.Seasons() {
		for _, e := range season.Episodes() {
			fmt.Fprintf(os.Stdout, "S%02dE%02d\t%s\n", season.Number(), e.Number(), e.Name())
		}
	}
	return 0
}

func episodeCmd(ctx context.Context, db *gotvdb.TVDB, arg, lang string) int {
	id, err := gotvdb.ParseID(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	e, err := db.GetEpisode(ctx, id, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取失败：%v\n", err)
		return 1
	}
	showName := ""
	if s := e.Season(); s != nil && s.Show() != nil {
		showName = s.Show().SeriesName()
	}
	fmt.Fprintf(os.Stdout, "%s S%02dE%02d\t%s\n", showName, e.SeasonNumber(), e.Number(), e.Name())
	return 0
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  gotvdb search  <名字> [--lang xx]
  gotvdb show    <id>   [--lang xx] [--full]
  gotvdb episode <id>   [--lang xx]

参数：
  --lang       语言码（未指定则读配置文件；最终默认 en）
  --full       show：拉取全量数据并列出全部季/集
  --config     配置文件路径（默认 <cwd>/gotvdb.yaml）
  --cache-dir  响应缓存目录
  -v           输出调试日志
  -h, --help   显示帮助

配置文件（gotvdb.yaml）必须包含 api_key。
`)
}
