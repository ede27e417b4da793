package catalog

import (
	"strings"

	"gorm.io/gorm"
)

// JobFilter 是职位列表的全量过滤参数，字段为空即不施加约束。
// 各维度之间取交集；Search 在 title/company 两列上取并集。
type JobFilter struct {
	Search   string // 标题或公司名包含该子串（不区分大小写）
	JobType  string // 类别精确匹配
	Location string // 地点包含该子串（不区分大小写）
	Skills   string // 与存储的逗号拼接技能串做子串匹配，见下
}

// Apply 将过滤条件叠加到查询上。
//
// Skills 是对整条逗号拼接技能串的子串匹配，不按技能分词：
// 过滤值 "react" 也会命中含 "reactive-programming" 的记录。
// 这是沿用下来的已知不精确行为，调用方（与测试）依赖字面子串语义，
// 改为分词匹配需要显式决策。
func (f JobFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		tx = tx.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if f.JobType != "" {
		tx = tx.Where("job_type = ?", f.JobType)
	}
	if f.Location != "" {
		tx = tx.Where("LOWER(location) LIKE ? ESCAPE '\\'", containsPattern(f.Location))
	}
	if f.Skills != "" {
		tx = tx.Where("LOWER(skills) LIKE ? ESCAPE '\\'", containsPattern(f.Skills))
	}
	return tx
}

// ExperienceFilter 是经验分享列表的全量过滤参数。
type ExperienceFilter struct {
	Search         string // 标题或公司名包含该子串（不区分大小写）
	ExperienceType string // 类别精确匹配
}

// Apply 将过滤条件叠加到查询上。
func (f ExperienceFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		tx = tx.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if f.ExperienceType != "" {
		tx = tx.Where("experience_type = ?", f.ExperienceType)
	}
	return tx
}

// containsPattern 把用户输入转成小写的 LIKE 子串模式。
// 转义 LIKE 元字符，保证输入按字面子串匹配。
func containsPattern(s string) string {
	s = strings.ToLower(s)
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}
