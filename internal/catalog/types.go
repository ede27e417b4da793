// Package catalog 实现两套目录（职位 / 经验分享）共享的核心管线：
// 过滤条件构造、排序策略、三态更新载荷与字段校验。
package catalog

// JobTypes 是职位类别的合法取值。
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

// ExperienceTypes 是经验分享类别的合法取值。
var ExperienceTypes = []string{"Intern", "Interview", "Full-time", "Contract", "Volunteer"}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}
