package tabular

import "sync"

// Cache 工作簿缓存，键为「绝对路径 + 工作表选择器」
// 条目在进程生命周期内常驻：不过期、不随源文件变化失效（已知的可接受取舍）
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Workbook
}

// NewCache 创建空缓存
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*Workbook),
	}
}

// Len 当前条目数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// getOrLoad 命中直接返回，否则在锁内加载并写入
// 「查缓存-否则加载并写入」整体互斥，避免并发宿主对同一文件重复加载
func (c *Cache) getOrLoad(key string, load func() (*Workbook, error)) (*Workbook, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wb, ok := c.entries[key]; ok {
		return wb, true, nil
	}

	wb, err := load()
	if err != nil {
		return nil, false, err
	}

	c.entries[key] = wb
	return wb, false, nil
}
