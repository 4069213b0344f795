package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_PutGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	defer s.Close()

	const url = "http://thetvdb.com/api/GetSeries.php?seriesname=dexter&language=en"

	if _, ok, err := s.Get(url); err != nil || ok {
		t.Fatalf("未写入前应未命中，ok=%v err=%v", ok, err)
	}

	if err := s.Put(url, []byte("<Data/>")); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	b, ok, err := s.Get(url)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !ok {
		t.Fatalf("期望命中缓存，但 ok=false")
	}
	if string(b) != "<Data/>" {
		t.Fatalf("内容不一致：%q", string(b))
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	defer s.Close()

	const url = "http://thetvdb.com/api/KEY/series/79349/en.xml"
	if err := s.Put(url, []byte("old")); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := s.Put(url, []byte("new")); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	b, ok, err := s.Get(url)
	if err != nil || !ok {
		t.Fatalf("期望命中，ok=%v err=%v", ok, err)
	}
	if string(b) != "new" {
		t.Fatalf("期望覆盖为 new，实际：%q", string(b))
	}
}

func TestOpen_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "responses.db")); err != nil {
		t.Fatalf("期望数据库文件存在，但 Stat 失败：%v", err)
	}
}

func TestOpen_EmptyDir(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
}
