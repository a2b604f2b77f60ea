package extract

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Connector 数据目录文件源
// 引擎不直接访问远程文档库，文件来源统一收敛为「给出候选绝对路径列表」
type Connector struct {
	dataDir string
}

// NewConnector 创建文件源，目录不存在时自动创建
func NewConnector(dataDir string) (*Connector, error) {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		log.Printf("[extract] data directory %s missing, creating", abs)
		if err := os.MkdirAll(abs, 0755); err != nil {
			return nil, err
		}
	}
	return &Connector{dataDir: abs}, nil
}

// DataDir 数据目录绝对路径
func (c *Connector) DataDir() string {
	return c.dataDir
}

// ListWorkbooks 列出目录下全部电子表格的绝对路径，按名排序
func (c *Connector) ListWorkbooks() ([]string, error) {
	entries, err := os.ReadDir(c.dataDir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
			paths = append(paths, filepath.Join(c.dataDir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
