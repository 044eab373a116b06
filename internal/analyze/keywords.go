package analyze

import "github.com/arpi-platform/regwatch/internal/model"

// KeywordScore pairs a keyword with the strictness score it signals.
type KeywordScore struct {
	Keyword string
	Score   float64
}

// RelevanceKeyword pairs a keyword with its relevance weight tier.
type RelevanceKeyword struct {
	Keyword string
	Weight  int
}

// DomainCategory defines one topic category by its synonym keywords.
type DomainCategory struct {
	Name     string
	Keywords []string
}

// EnforcementRule defines the keyword list for one legal-force tier.
// Rules are evaluated in declaration order; ties go to the first declared.
type EnforcementRule struct {
	Level    model.EnforcementLevel
	Keywords []string
}

// Tables holds every keyword table the analyzer consults. A Tables value is
// immutable after construction and safe to share across concurrent runs.
type Tables struct {
	// Strict maps regulatory-strictness keywords to scores in [2, 10].
	Strict []KeywordScore

	// Encourage maps innovation-encouragement keywords to scores in [1, 3].
	// These represent a low-strictness stance.
	Encourage []KeywordScore

	// Relevance holds the tiered keyword weights for the topical
	// relevance filter.
	Relevance []RelevanceKeyword

	// Domains lists the topic categories, each with its synonym keywords.
	// Matched category names are emitted in this order.
	Domains []DomainCategory

	// Enforcement lists the legal-force tiers in priority order.
	Enforcement []EnforcementRule

	// Penalty lists the penalty-indicator words.
	Penalty []string

	// Urgency lists the urgency words counted into UrgencyIndicators.
	Urgency []string
}

// DefaultTables returns the built-in keyword tables for Chinese AI
// regulatory policy. Keywords that contain Latin letters are stored
// lowercase because all matching runs over lower-cased text.
func DefaultTables() Tables {
	return Tables{
		Strict: []KeywordScore{
			// Prohibitive (9-10)
			{"严禁", 10}, {"禁止", 9}, {"不得", 8}, {"违法", 10}, {"处罚", 9},
			{"停业", 10}, {"吊销", 10}, {"责令", 8}, {"查处", 9}, {"整改", 7},
			// Heavy oversight (7-8)
			{"监管", 7}, {"合规", 7}, {"审查", 8}, {"审批", 7}, {"备案", 6},
			{"许可", 7}, {"资质", 6}, {"认证", 6}, {"检查", 7}, {"督查", 8},
			// Moderate control (5-6)
			{"规范", 5}, {"管理", 5}, {"制度", 5}, {"标准", 5}, {"要求", 4},
			{"应当", 5}, {"必须", 6}, {"义务", 6}, {"责任", 5}, {"风险", 6},
			// Soft steering (2-3)
			{"指导", 3}, {"建议", 3}, {"推荐", 2}, {"提倡", 2}, {"倡导", 2},
		},
		Encourage: []KeywordScore{
			// Strong encouragement (1-2)
			{"鼓励", 1}, {"支持", 1}, {"促进", 1}, {"推动", 2}, {"加快", 2},
			{"创新", 1}, {"突破", 1}, {"发展", 2}, {"提升", 2}, {"优化", 2},
			// Adoption push (1-3)
			{"应用", 2}, {"试点", 3}, {"示范", 3}, {"推广", 2}, {"普及", 2},
			{"数字化", 2}, {"智能化", 1}, {"升级", 2}, {"转型", 2}, {"赋能", 1},
		},
		Relevance: []RelevanceKeyword{
			// Core AI terms
			{"人工智能", 3}, {"大模型", 3}, {"生成式", 3}, {"aigc", 3},
			// Key technologies
			{"算法", 2}, {"智能", 2}, {"深度合成", 2}, {"机器学习", 2}, {"深度学习", 2},
			// Peripheral terms
			{"ai", 1}, {"自然语言处理", 1}, {"算法推荐", 1},
		},
		Domains: []DomainCategory{
			{"隐私保护", []string{"隐私", "个人信息", "数据保护", "信息保护", "敏感信息"}},
			{"算法透明度", []string{"算法", "算法透明", "可解释", "黑盒", "算法歧视", "算法公平"}},
			{"未成年人保护", []string{"未成年", "儿童", "青少年", "学生", "未成年人保护"}},
			{"生成式AI", []string{"生成式", "大模型", "chatgpt", "aigc", "生成式人工智能", "深度合成"}},
			{"数据安全", []string{"数据安全", "网络安全", "信息安全", "数据泄露", "网络攻击"}},
			{"内容安全", []string{"内容安全", "有害信息", "虚假信息", "不良内容", "违法内容"}},
		},
		Enforcement: []EnforcementRule{
			{model.EnforcementLaw, []string{"法律", "法规", "条例", "刑法", "民法", "行政法"}},
			{model.EnforcementAdministrativeRule, []string{"规定", "办法", "细则", "规章", "管理办法", "实施细则"}},
			{model.EnforcementIndustryStandard, []string{"标准", "规范", "指南", "准则", "技术标准", "国家标准"}},
			{model.EnforcementGuidance, []string{"意见", "通知", "指导", "建议", "倡议", "指南"}},
		},
		Penalty: []string{"处罚", "罚款", "责任", "违法"},
		Urgency: []string{"紧急", "立即", "尽快", "马上"},
	}
}
