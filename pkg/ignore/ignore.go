package ignore

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile 是用户自定义规则所在的文件名
const IgnoreFile = ".jvignore"

// Matcher 封装了忽略逻辑
// 它决定 hide 展开目录时哪些文件不应被打包
type Matcher struct {
	ignorer *gitignore.GitIgnore
}

// NewMatcher 初始化忽略匹配器
// rootPath: 查找 .jvignore 的目录
// extra: 运行时追加的规则，例如配置里的容器输出名和解出目录
func NewMatcher(rootPath string, extra ...string) (*Matcher, error) {
	// 1. 系统级默认规则，强制生效
	defaultRules := []string{
		".jv",  // 配置与历史记录目录
		".git", // 忽略 Git 仓库数据

		// 防止把自己的规则文件和配置打包进去
		IgnoreFile,
		"config.yaml",

		// --- 常见垃圾文件 ---
		".DS_Store", // macOS
		"Thumbs.db", // Windows
	}
	defaultRules = append(defaultRules, extra...)

	var ignorer *gitignore.GitIgnore
	var err error

	// 2. 检查用户是否有 .jvignore 文件
	ignoreFilePath := filepath.Join(rootPath, IgnoreFile)

	if _, errStat := os.Stat(ignoreFilePath); errStat == nil {
		// 情况 A: 文件内容和默认规则合并编译
		ignorer, err = gitignore.CompileIgnoreFileAndLines(ignoreFilePath, defaultRules...)
	} else {
		// 情况 B: 仅编译默认规则
		ignorer = gitignore.CompileIgnoreLines(defaultRules...)
	}

	if err != nil {
		return nil, err
	}

	return &Matcher{ignorer: ignorer}, nil
}

// Matches 检查给定的路径是否匹配忽略规则
// 返回: true 表示应该忽略 (Skip), false 表示应该保留 (Keep)
func (m *Matcher) Matches(path string) bool {
	if m == nil || m.ignorer == nil {
		return false
	}
	return m.ignorer.MatchesPath(filepath.ToSlash(path))
}
