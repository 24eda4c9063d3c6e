package domain

import "strings"

type ExpenseCategory string

const (
	CategoryAdvertising         ExpenseCategory = "advertising"
	CategoryOutsourcing         ExpenseCategory = "outsourcing"
	CategoryPersonnel           ExpenseCategory = "personnel"
	CategoryResearchDevelopment ExpenseCategory = "research_development"
	CategoryReserveInvestment   ExpenseCategory = "reserve_investment"
)

type ExpenseSubcategory string

// Publicidade
const (
	SubWebAds           ExpenseSubcategory = "web_ads"
	SubSocialAds        ExpenseSubcategory = "social_ads"
	SubOfflineAds       ExpenseSubcategory = "offline_ads"
	SubPublicRelations  ExpenseSubcategory = "public_relations"
	SubEvents           ExpenseSubcategory = "events"
	SubContentMarketing ExpenseSubcategory = "content_marketing"
)

// Terceirização
const (
	SubDevelopment      ExpenseSubcategory = "development"
	SubDesign           ExpenseSubcategory = "design"
	SubConsulting       ExpenseSubcategory = "consulting"
	SubMarketingAgency  ExpenseSubcategory = "marketing_agency"
	SubCustomerSupport  ExpenseSubcategory = "customer_support"
	SubOtherOutsourcing ExpenseSubcategory = "other_outsourcing"
)

// Pessoal
const (
	SubExecutiveCompensation ExpenseSubcategory = "executive_compensation"
	SubFullTimeSalary        ExpenseSubcategory = "full_time_salary"
	SubContractSalary        ExpenseSubcategory = "contract_salary"
	SubPartTimeSalary        ExpenseSubcategory = "part_time_salary"
	SubBonus                 ExpenseSubcategory = "bonus"
	SubSocialInsurance       ExpenseSubcategory = "social_insurance"
	SubSeverance             ExpenseSubcategory = "severance"
)

// Pesquisa e desenvolvimento
const (
	SubProductDevelopment ExpenseSubcategory = "product_development"
	SubTechnicalResearch  ExpenseSubcategory = "technical_research"
	SubPrototyping        ExpenseSubcategory = "prototyping"
	SubPatentFiling       ExpenseSubcategory = "patent_filing"
	SubLicensing          ExpenseSubcategory = "licensing"
	SubDevelopmentTools   ExpenseSubcategory = "development_tools"
)

// Reserva de investimento
const (
	SubEquipment           ExpenseSubcategory = "equipment"
	SubSystems             ExpenseSubcategory = "systems"
	SubExpansion           ExpenseSubcategory = "expansion"
	SubNewBusiness         ExpenseSubcategory = "new_business"
	SubMergersAcquisitions ExpenseSubcategory = "mergers_acquisitions"
	SubContingency         ExpenseSubcategory = "contingency"
)

var categoryOrder = []ExpenseCategory{
	CategoryAdvertising,
	CategoryOutsourcing,
	CategoryPersonnel,
	CategoryResearchDevelopment,
	CategoryReserveInvestment,
}

var taxonomy = map[ExpenseCategory][]ExpenseSubcategory{
	CategoryAdvertising:         {SubWebAds, SubSocialAds, SubOfflineAds, SubPublicRelations, SubEvents, SubContentMarketing},
	CategoryOutsourcing:         {SubDevelopment, SubDesign, SubConsulting, SubMarketingAgency, SubCustomerSupport, SubOtherOutsourcing},
	CategoryPersonnel:           {SubExecutiveCompensation, SubFullTimeSalary, SubContractSalary, SubPartTimeSalary, SubBonus, SubSocialInsurance, SubSeverance},
	CategoryResearchDevelopment: {SubProductDevelopment, SubTechnicalResearch, SubPrototyping, SubPatentFiling, SubLicensing, SubDevelopmentTools},
	CategoryReserveInvestment:   {SubEquipment, SubSystems, SubExpansion, SubNewBusiness, SubMergersAcquisitions, SubContingency},
}

// Rótulos exibidos no painel (japonês, idioma da interface original)
var categoryLabels = map[ExpenseCategory]string{
	CategoryAdvertising:         "広告宣伝費",
	CategoryOutsourcing:         "業務委託費",
	CategoryPersonnel:           "人件費",
	CategoryResearchDevelopment: "研究開発費",
	CategoryReserveInvestment:   "予備投資費",
}

var subcategoryLabels = map[ExpenseSubcategory]string{
	SubWebAds:                "Web広告",
	SubSocialAds:             "SNS広告",
	SubOfflineAds:            "オフライン広告",
	SubPublicRelations:       "PR・広報",
	SubEvents:                "イベント・展示会",
	SubContentMarketing:      "コンテンツマーケティング",
	SubDevelopment:           "開発委託",
	SubDesign:                "デザイン委託",
	SubConsulting:            "コンサルティング",
	SubMarketingAgency:       "マーケティング委託",
	SubCustomerSupport:       "カスタマーサポート委託",
	SubOtherOutsourcing:      "その他委託",
	SubExecutiveCompensation: "役員報酬",
	SubFullTimeSalary:        "正社員給与",
	SubContractSalary:        "契約社員給与",
	SubPartTimeSalary:        "アルバイト給与",
	SubBonus:                 "賞与",
	SubSocialInsurance:       "社会保険料",
	SubSeverance:             "退職金",
	SubProductDevelopment:    "製品開発",
	SubTechnicalResearch:     "技術研究",
	SubPrototyping:           "プロトタイプ制作",
	SubPatentFiling:          "特許申請",
	SubLicensing:             "ライセンス取得",
	SubDevelopmentTools:      "開発ツール",
	SubEquipment:             "設備投資",
	SubSystems:               "システム投資",
	SubExpansion:             "事業拡大準備",
	SubNewBusiness:           "新規事業開発",
	SubMergersAcquisitions:   "M&A関連",
	SubContingency:           "緊急対応費",
}

// ExpenseCategories retorna as categorias na ordem fixa da taxonomia
func ExpenseCategories() []ExpenseCategory {
	out := make([]ExpenseCategory, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func (c ExpenseCategory) Valid() bool {
	_, ok := taxonomy[c]
	return ok
}

func (c ExpenseCategory) Label() string {
	return categoryLabels[c]
}

func (c ExpenseCategory) Subcategories() []ExpenseSubcategory {
	subs := taxonomy[c]
	out := make([]ExpenseSubcategory, len(subs))
	copy(out, subs)
	return out
}

func (s ExpenseSubcategory) Label() string {
	return subcategoryLabels[s]
}

// ParseExpenseCategory aceita o valor do enum ou o rótulo exibido
func ParseExpenseCategory(value string) (ExpenseCategory, bool) {
	value = strings.TrimSpace(value)
	if c := ExpenseCategory(strings.ToLower(value)); c.Valid() {
		return c, true
	}
	for c, label := range categoryLabels {
		if label == value {
			return c, true
		}
	}
	return "", false
}

// ParseExpenseSubcategory aceita o valor do enum ou o rótulo exibido
func ParseExpenseSubcategory(value string) (ExpenseSubcategory, bool) {
	value = strings.TrimSpace(value)
	if s := ExpenseSubcategory(strings.ToLower(value)); s.Label() != "" {
		return s, true
	}
	for s, label := range subcategoryLabels {
		if label == value {
			return s, true
		}
	}
	return "", false
}

// TaxonomyEntry é a representação da taxonomia exposta pela API
type TaxonomyEntry struct {
	Category      ExpenseCategory   `json:"category"`
	Label         string            `json:"label"`
	Subcategories []SubcategoryItem `json:"subcategories"`
}

type SubcategoryItem struct {
	Value ExpenseSubcategory `json:"value"`
	Label string             `json:"label"`
}

func Taxonomy() []TaxonomyEntry {
	entries := make([]TaxonomyEntry, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		entry := TaxonomyEntry{Category: c, Label: c.Label()}
		for _, s := range taxonomy[c] {
			entry.Subcategories = append(entry.Subcategories, SubcategoryItem{Value: s, Label: s.Label()})
		}
		entries = append(entries, entry)
	}
	return entries
}
