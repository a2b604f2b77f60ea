package agent

import (
	"log"

	"github.com/jamesbas/supplemental-pay-agent/internal/analysis"
	"github.com/jamesbas/supplemental-pay-agent/internal/extract"
	"github.com/jamesbas/supplemental-pay-agent/internal/inference"
	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

// Deps 领域处理器共用依赖
type Deps struct {
	Gen               inference.Generator
	Loader            *tabular.Loader
	Files             *extract.Connector
	OutlierMultiplier float64
}

// Tables 拉取三类规范表（Loader+Reconciler 在下层，结果已记忆化）
// 文件源故障退化为空表集：部分数据可用是常态
func (d *Deps) Tables() extract.TableSet {
	paths, err := d.Files.ListWorkbooks()
	if err != nil {
		log.Printf("[agent] list workbooks failed: %v", err)
		paths = nil
	}
	return extract.ExtractAll(d.Loader, paths)
}

// multiplier 离群点倍数，未配置取默认
func (d *Deps) multiplier() float64 {
	if d.OutlierMultiplier > 0 {
		return d.OutlierMultiplier
	}
	return analysis.DefaultOutlierMultiplier
}
