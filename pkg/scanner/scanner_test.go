package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonemaro/linecount/pkg/logger"
	"github.com/sonemaro/linecount/pkg/tally"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

// failingFs refuses to open one path.
type failingFs struct {
	afero.Fs
	failPath string
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if name == f.failPath {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

var defaultExtensions = NewExtensionSet(
	".ts", ".tsx", ".js", ".jsx", ".py", ".css", ".scss",
	".html", ".md", ".json", ".yml", ".yaml",
)

func defaultConfig() Config {
	return Config{
		Ignore:     defaultIgnore,
		Extensions: defaultExtensions,
	}
}

func setupTestFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func get(t *testing.T, tl *tally.Tally, ext string) tally.ExtensionStats {
	t.Helper()
	s, ok := tl.Get(ext)
	require.True(t, ok, "extension %s not registered", ext)
	return s
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		verify func(*testing.T, Result)
	}{
		{
			name: "python file and unrecognised text file",
			files: map[string]string{
				"/proj/a.py":  "# comment\n\nx=1\n",
				"/proj/b.txt": "anything\n",
			},
			verify: func(t *testing.T, result Result) {
				rows := result.Tally.Rows()
				require.Len(t, rows, 1)
				assert.Equal(t, ".py", rows[0].Extension)
				assert.Equal(t, tally.ExtensionStats{
					Files:     1,
					FileStats: tally.FileStats{Total: 3, Code: 1, Comment: 1, Blank: 1},
				}, rows[0].ExtensionStats)
				assert.Equal(t, 1, result.Tally.GrandTotal().Files)
				assert.Equal(t, int64(1), result.Stats.FilesSkipped)
			},
		},
		{
			name: "node_modules subtree is pruned",
			files: map[string]string{
				"/proj/node_modules/x.js":     "var x = 1;\n",
				"/proj/node_modules/lib/y.js": "var y = 1;\n",
				"/proj/src/main.ts":           "const a = 1;\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, 0, get(t, result.Tally, ".js").Files)
				assert.Equal(t, 1, get(t, result.Tally, ".ts").Files)
				for _, row := range result.Tally.Rows() {
					assert.NotEqual(t, ".js", row.Extension)
				}
				assert.Equal(t, int64(1), result.Stats.PrunedDirs)
			},
		},
		{
			name: "substring matches prune directories",
			files: map[string]string{
				"/proj/my-build-tools/a.py": "x\n",
				"/proj/builder/b.py":        "x\n",
				"/proj/.github/ci.yml":      "on: push\n",
				"/proj/keep/c.py":           "x\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, 1, get(t, result.Tally, ".py").Files)
				assert.Equal(t, 0, get(t, result.Tally, ".yml").Files)
				assert.Equal(t, int64(3), result.Stats.PrunedDirs)
			},
		},
		{
			name: "file names are not matched against the ignore set",
			files: map[string]string{
				"/proj/distiller.py":    "x = 1\n",
				"/proj/build_config.py": "y = 2\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, 2, get(t, result.Tally, ".py").Files)
				assert.Equal(t, 2, get(t, result.Tally, ".py").Code)
			},
		},
		{
			name: "undecodable file counts as a file with zero lines",
			files: map[string]string{
				"/proj/data.json": string([]byte{0xff, 0xfe, 0x00, 0x01}),
				"/proj/ok.json":   "{\n  \"a\": 1\n}\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, tally.ExtensionStats{
					Files:     2,
					FileStats: tally.FileStats{Total: 3, Code: 3},
				}, get(t, result.Tally, ".json"))
				assert.Equal(t, int64(1), result.Stats.DecodeFailures)
				assert.Equal(t, int64(17), result.Stats.BytesRead)
			},
		},
		{
			name: "extensions are case-insensitive",
			files: map[string]string{
				"/proj/README.MD":  "# Title\n\ntext\n",
				"/proj/App.Tsx":    "export {}\n",
				"/proj/.json":      "{}\n",
				"/proj/Dockerfile": "FROM x\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, 1, get(t, result.Tally, ".md").Files)
				assert.Equal(t, 1, get(t, result.Tally, ".tsx").Files)
				assert.Equal(t, 0, get(t, result.Tally, ".json").Files)
				assert.Equal(t, int64(2), result.Stats.FilesSkipped)
			},
		},
		{
			name: "per extension sums and totals",
			files: map[string]string{
				"/proj/a.ts":           "// a\nconst a = 1\n\n",
				"/proj/lib/b.ts":       "/* b */\n * c\nlet b\n",
				"/proj/lib/deep/c.css": "body {}\n",
			},
			verify: func(t *testing.T, result Result) {
				assert.Equal(t, tally.ExtensionStats{
					Files:     2,
					FileStats: tally.FileStats{Total: 6, Code: 2, Comment: 3, Blank: 1},
				}, get(t, result.Tally, ".ts"))

				total := result.Tally.GrandTotal()
				assert.Equal(t, 3, total.Files)
				assert.Equal(t, 7, total.Total)
				assert.True(t, total.Valid())
				assert.Equal(t, int64(3), result.Stats.Directories)
			},
		},
		{
			name:  "empty tree",
			files: map[string]string{"/proj/.keep": ""},
			verify: func(t *testing.T, result Result) {
				assert.Empty(t, result.Tally.Rows())
				assert.Equal(t, tally.ExtensionStats{}, result.Tally.GrandTotal())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupTestFS(t, tt.files)
			log := &mockLogger{}

			s := NewScanner(defaultConfig(), fs, log)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			result, err := s.Scan(ctx, "/proj")
			require.NoError(t, err)
			require.NotNil(t, result.Tally)

			tt.verify(t, result)

			assert.NotEmpty(t, log.logs)
			assert.Contains(t, log.logs[0], "Starting scan")
		})
	}
}

func TestScanIgnoredRoot(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"/work/dist/app/a.js": "x\n",
	})

	result, err := NewScanner(defaultConfig(), fs, &mockLogger{}).Scan(context.Background(), "/work/dist/app")
	require.NoError(t, err)
	assert.Empty(t, result.Tally.Rows())
	assert.Equal(t, int64(1), result.Stats.PrunedDirs)
}

func TestScanIsDeterministic(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"/proj/a.py":     "x\n",
		"/proj/b/c.md":   "# t\n",
		"/proj/b/d/e.js": "// c\nx\n",
	})
	s := NewScanner(defaultConfig(), fs, &mockLogger{})

	first, err := s.Scan(context.Background(), "/proj")
	require.NoError(t, err)
	second, err := s.Scan(context.Background(), "/proj")
	require.NoError(t, err)

	assert.Equal(t, first.Tally.Rows(), second.Tally.Rows())
	assert.Equal(t, first.Tally.GrandTotal(), second.Tally.GrandTotal())
}

func TestScanErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_, err := NewScanner(defaultConfig(), fs, &mockLogger{}).Scan(context.Background(), "/nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("root is a file", func(t *testing.T) {
		fs := setupTestFS(t, map[string]string{"/proj/a.py": "x\n"})
		_, err := NewScanner(defaultConfig(), fs, &mockLogger{}).Scan(context.Background(), "/proj/a.py")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("unreadable file aborts the walk", func(t *testing.T) {
		mem := setupTestFS(t, map[string]string{
			"/proj/a.py":       "x\n",
			"/proj/secret.py":  "y\n",
			"/proj/z/later.py": "z\n",
		})
		fs := &failingFs{Fs: mem, failPath: "/proj/secret.py"}
		log := &mockLogger{}

		result, err := NewScanner(defaultConfig(), fs, log).Scan(context.Background(), "/proj")
		require.Error(t, err)
		assert.Nil(t, result.Tally)

		var permErr *PermissionError
		require.True(t, errors.As(err, &permErr))
		assert.Equal(t, "/proj/secret.py", permErr.Path)
		assert.Contains(t, log.logs, "ERROR: Scan operation failed")
	})

	t.Run("unreadable file with unrecognised extension is never opened", func(t *testing.T) {
		mem := setupTestFS(t, map[string]string{
			"/proj/a.py":     "x\n",
			"/proj/blob.bin": "binary",
		})
		fs := &failingFs{Fs: mem, failPath: "/proj/blob.bin"}

		result, err := NewScanner(defaultConfig(), fs, &mockLogger{}).Scan(context.Background(), "/proj")
		require.NoError(t, err)
		assert.Equal(t, 1, get(t, result.Tally, ".py").Files)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := setupTestFS(t, map[string]string{"/proj/a.py": "x\n"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewScanner(defaultConfig(), fs, &mockLogger{}).Scan(ctx, "/proj")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestScanWithRateLimit(t *testing.T) {
	fs := setupTestFS(t, map[string]string{
		"/proj/a.py": "x\n",
		"/proj/b.py": "y\n",
		"/proj/c.py": "z\n",
	})
	cfg := defaultConfig()
	cfg.RateLimit = 1000

	result, err := NewScanner(cfg, fs, &mockLogger{}).Scan(context.Background(), "/proj")
	require.NoError(t, err)
	assert.Equal(t, 3, get(t, result.Tally, ".py").Files)
}

func TestScanOsFsSymlinks(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "real", "a.py"), []byte("x\n"), 0644))
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "a.py"), filepath.Join(root, "alias.py")))

	cfg := Config{
		Ignore:     IgnoreSet{"node_modules"},
		Extensions: defaultExtensions,
	}
	result, err := NewScanner(cfg, afero.NewOsFs(), &mockLogger{}).Scan(context.Background(), root)
	require.NoError(t, err)

	// real/a.py once directly, once through alias.py; linked/ is not descended.
	assert.Equal(t, 2, get(t, result.Tally, ".py").Files)
	assert.Equal(t, int64(1), result.Stats.LinkedDirs)
}
