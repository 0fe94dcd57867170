package config

// IgnorePatterns are the substrings that prune a directory when any of its
// path segments contains one of them.
var IgnorePatterns = []string{
	"node_modules", ".git", "dist", "build", "__pycache__",
	".DS_Store", ".env", ".vscode", "coverage",
}

// Extensions are the file extensions whose files are counted.
var Extensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".py", ".css", ".scss",
	".html", ".md", ".json", ".yml", ".yaml",
}

const (
	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "LINECOUNT"

	// UnlimitedRate disables the file read rate limit
	UnlimitedRate = 0
)
