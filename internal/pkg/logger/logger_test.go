package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/config"
)

func TestNew(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Convey("New 按配置创建 logger", t, func() {
		var buf bytes.Buffer

		Convey("json 格式输出结构化字段", func() {
			l := New(&config.LogConfig{Level: "debug", Format: "json"}, &buf)
			l.Debug().Str("request_id", "abc").Msg("hello")

			var entry map[string]any
			So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
			So(entry["level"], ShouldEqual, "debug")
			So(entry["request_id"], ShouldEqual, "abc")
			So(entry["message"], ShouldEqual, "hello")
		})

		Convey("级别过滤", func() {
			l := New(&config.LogConfig{Level: "warn", Format: "json"}, &buf)
			l.Info().Msg("dropped")
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("非法级别回退到 info", func() {
			New(&config.LogConfig{Level: "verbose", Format: "json"}, &buf)
			So(zerolog.GlobalLevel(), ShouldEqual, zerolog.InfoLevel)
		})
	})
}

func TestInitFileOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "quill.log")
	if err := Init(&config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	l := Get()
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !bytes.Contains(data, []byte("to file")) {
		t.Errorf("log file missing entry: %s", data)
	}
}
