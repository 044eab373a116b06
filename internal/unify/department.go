package unify

import (
	"strings"

	"github.com/arpi-platform/regwatch/internal/model"
)

// DepartmentRule maps any of its substrings to a canonical department name.
type DepartmentRule struct {
	// Substrings trigger the rule when any of them is contained in the
	// free-text department name.
	Substrings []string

	// Canonical is the controlled-vocabulary name the rule produces.
	Canonical string
}

// departmentRules is the ordered controlled vocabulary for issuing
// departments. Rule order is load-bearing: department names share
// overlapping substrings, and the first matching rule wins.
var departmentRules = []DepartmentRule{
	{
		Substrings: []string{"工业和信息化部"},
		Canonical:  "中华人民共和国工业和信息化部",
	},
	{
		Substrings: []string{"网信办", "国家互联网信息办公室"},
		Canonical:  "国家互联网信息办公室",
	},
	{
		Substrings: []string{"市场监督管理总局"},
		Canonical:  "国家市场监督管理总局",
	},
	{
		Substrings: []string{"全国信息安全标准化技术委员会"},
		Canonical:  "全国信息安全标准化技术委员会",
	},
}

// UnifyDepartment maps a free-text department name onto the controlled
// vocabulary. Names matching no rule pass through unchanged.
func UnifyDepartment(name string) string {
	for _, rule := range departmentRules {
		for _, sub := range rule.Substrings {
			if strings.Contains(name, sub) {
				return rule.Canonical
			}
		}
	}
	return name
}

// UnifyDepartments fills UnifiedDepartment for every record in place.
func UnifyDepartments(records []model.UnifiedRecord) {
	for i := range records {
		records[i].UnifiedDepartment = UnifyDepartment(records[i].IssuingDepartment)
	}
}
