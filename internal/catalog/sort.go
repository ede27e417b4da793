package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"careerhub/internal/database"
)

// Strategy 选择列表排序策略。
type Strategy string

const (
	// SortSoonest 截止日期升序，无截止日期的记录排在所有有日期的之后。
	SortSoonest Strategy = "soonest"
	// SortRecent 创建时间降序（默认）。
	SortRecent Strategy = "recent"
	// SortCompany 公司名按语言环境升序。
	SortCompany Strategy = "company"
)

// ParseStrategy 解析排序参数，未知值回落到默认的 recent。
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case SortSoonest, SortRecent, SortCompany:
		return Strategy(s)
	default:
		return SortRecent
	}
}

// SortJobs 按策略返回排好序的新切片，不改动输入。
// 排序是稳定的：键相等的记录保持原有相对顺序。
func SortJobs(items []database.Job, strategy Strategy) []database.Job {
	out := make([]database.Job, len(items))
	copy(out, items)

	switch strategy {
	case SortSoonest:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Deadline, out[j].Deadline
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortCompany:
		col := newCompanyCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Company, out[j].Company) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// SortExperiences 同 SortJobs。经验分享没有截止日期，
// soonest 下全部视为“无日期”，保持原有顺序。
func SortExperiences(items []database.Experience, strategy Strategy) []database.Experience {
	out := make([]database.Experience, len(items))
	copy(out, items)

	switch strategy {
	case SortSoonest:
		// 无键可比，稳定排序等价于不动
	case SortCompany:
		col := newCompanyCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Company, out[j].Company) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// collate.Collator 不能并发使用，每次排序各建一个。
func newCompanyCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
