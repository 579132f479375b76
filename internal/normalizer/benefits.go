package normalizer

import (
	"fmt"
	"sort"
	"strings"
)

// benefitItem labels one benefit and the token evidence that implies it.
// Any is satisfied by a single token; All is a list of token sets where
// one fully-present set suffices.
type benefitItem struct {
	Key   string
	Label string
	Any   []string
	All   [][]string
}

type benefitGroup struct {
	Key   string
	Items []benefitItem
}

// benefitGroups is the tagging taxonomy applied to the concatenated
// description, requirements and benefits text of a listing. Tokens are
// diacritic-free because matching runs on Normalize()d text.
var benefitGroups = []benefitGroup{
	{Key: "Luong-Thuong", Items: []benefitItem{
		{Key: "salary_competitive", Label: "Luong canh tranh/thoa thuan", Any: []string{
			"negotiable", "deal salary", "at interview", "competitive", "attractive",
			"market rate", "commensurate", "thuong luong", "thoa thuan", "luong thoa thuan",
			"thu nhap thoa thuan", "luong canh tranh", "luong hap dan", "wage agreement",
			"agreed in interview", "to be discussed",
		}},
		{Key: "thang_luong_13", Label: "Luong thang 13", Any: []string{
			"13th", "13th month salary", "thang luong 13", "luong 13", "t13", "month 13",
		}},
		{Key: "bonus_generic", Label: "Bonus", Any: []string{
			"bonus", "bonuses", "incentive", "incentives", "thuong", "thuong them",
		}},
		{Key: "bonus_performance", Label: "Thuong hieu suat/KPI",
			All: [][]string{{"performance", "bonus"}, {"kpi", "bonus"}, {"hieu suat", "thuong"}},
			Any: []string{"kpi", "performance incentive", "thuong hieu suat", "thuong kpi", "monthly performance bonus"},
		},
		{Key: "bonus_quarter_year_end", Label: "Thuong quy/cuoi nam", Any: []string{
			"quarter bonus", "quarterly bonus", "year end bonus", "year-end bonus",
			"thuong quy", "thuong cuoi nam", "thuong nam", "bonus cuoi nam",
		}},
		{Key: "bonus_sales_profit", Label: "Thuong doanh so/loi nhuan",
			All: [][]string{{"sales", "bonus"}, {"profit", "bonus"}, {"doanh so", "thuong"}, {"loi nhuan", "thuong"}},
			Any: []string{"commission", "hoa hong", "sales incentive"},
		},
		{Key: "bonus_holiday_tet", Label: "Thuong le/Tet", Any: []string{
			"holiday bonus", "tet bonus", "thuong le", "thuong tet", "lucky money", "li xi",
		}},
		{Key: "salary_review", Label: "Xet tang luong", Any: []string{
			"salary review", "salary adjustment", "salary raise", "pay raise",
			"xet tang luong", "tang luong hang nam", "review luong", "danh gia luong",
		}},
		{Key: "profit_sharing", Label: "Chia loi nhuan", Any: []string{
			"profit sharing", "profit-share", "chia loi nhuan", "share profit",
		}},
		{Key: "esop_stock", Label: "ESOP/Co phieu thuong", Any: []string{
			"esop", "stock option", "share option", "stock grant", "rsu", "equity", "co phieu thuong",
		}},
	}},
	{Key: "BaoHiem-SK", Items: []benefitItem{
		{Key: "bhxh_bhyt_bhtn", Label: "BHXH/BHYT/BHTN",
			Any: []string{
				"bhxh", "bhyt", "bhtn", "bao hiem xa hoi", "bao hiem y te", "bao hiem that nghiep",
				"compulsory insurance", "statutory insurance", "full insurance",
			},
			All: [][]string{{"social", "insurance"}, {"health", "insurance"}},
		},
		{Key: "health_insurance", Label: "Bao hiem suc khoe",
			All: [][]string{{"health", "insurance"}, {"medical", "insurance"}},
			Any: []string{
				"premium health insurance", "private health insurance", "pvi", "bao viet",
				"bao hiem suc khoe", "medical plan", "healthcare insurance", "family healthcare",
			},
		},
		{Key: "annual_health_check", Label: "Kham suc khoe dinh ky", Any: []string{
			"annual health check", "health check", "kham suc khoe", "kham suc khoe dinh ky",
		}},
		{Key: "family_package", Label: "Bao hiem nguoi than", Any: []string{
			"family package", "family plan", "dependents coverage", "bao hiem nguoi than", "cover family members",
		}},
		{Key: "accident_24_7", Label: "Tai nan 24/7", Any: []string{
			"24/7 accident", "personal accident", "accident insurance", "bao hiem tai nan",
		}},
		{Key: "dental_vision", Label: "Dental/Vision", Any: []string{
			"dental", "vision care", "nha khoa", "nhan khoa", "dental care",
		}},
		{Key: "mental_health", Label: "Mental health/EAP", Any: []string{
			"mental health", "eap", "wellbeing", "well-being", "wellness program", "employee assistance",
		}},
		{Key: "sport_clubs", Label: "CLB the thao/Wellness", Any: []string{
			"sport club", "sports club", "wellness", "gym", "yoga", "clb the thao", "fitness",
		}},
	}},
	{Key: "NghiPhep-Time", Items: []benefitItem{
		{Key: "annual_leave", Label: "Nghi phep nam", Any: []string{
			"annual leave", "paid time off", "pto", "nghi phep", "nghi phep nam", "phep nam",
			"nghi le", "nghi tet",
		}},
		{Key: "statutory_leave", Label: "Phep nam theo luat", Any: []string{
			"theo luat", "theo luat dinh", "phep nam theo luat", "annual leave as per law", "statutory leave",
		}},
		{Key: "special_days", Label: "Ngay nghi dac biet", Any: []string{
			"christmas", "company day off", "ngay nghi dac biet", "company holidays",
		}},
		{Key: "five_days_week", Label: "5 ngay/tuan", Any: []string{
			"5 days a week", "5-day work week", "5 ngay/tuan", "lam 5 ngay",
		}},
		{Key: "flexible_hours", Label: "Gio linh hoat", Any: []string{
			"flexible hours", "flexible time", "flexible schedule", "gio linh hoat", "flextime", "flexitime",
		}},
		{Key: "remote_hybrid", Label: "Remote/Hybrid/WFH", Any: []string{
			"remote", "hybrid", "work from home", "lam viec tu xa", "lam viec hybrid",
		}},
		{Key: "paid_personal_leave", Label: "Nghi rieng huong luong", Any: []string{
			"paid personal leave", "nghi viec rieng", "nghi rieng huong luong",
		}},
		{Key: "sick_leave", Label: "Nghi om", Any: []string{
			"sick leave", "sick days", "nghi om",
		}},
		{Key: "parental_leave", Label: "Thai san/Parental", Any: []string{
			"maternity leave", "paternity leave", "parental leave", "thai san", "nghi sinh", "che do thai san",
		}},
		{Key: "overtime_pay", Label: "OT/Tang ca", Any: []string{
			"overtime", "ot", "overtime pay", "tang ca", "phu cap tang ca",
		}},
	}},
	{Key: "DaoTao-PT", Items: []benefitItem{
		{Key: "training", Label: "Training/On-the-job", Any: []string{
			"training", "on the job", "on-the-job", "ojt", "workshop", "seminar",
			"dao tao", "dao tao noi bo", "ky nang mem", "soft skills",
		}},
		{Key: "overseas", Label: "Overseas/Abroad", Any: []string{
			"overseas", "abroad", "secondment", "nuoc ngoai", "onsite overseas", "training abroad",
		}},
		{Key: "language_stipend", Label: "Phu cap ngoai ngu", Any: []string{
			"language allowance", "language class", "language course", "phu cap ngoai ngu", "tro cap ngoai ngu",
		}},
		{Key: "career_path", Label: "Career path/Review", Any: []string{
			"career path", "promotion", "lo trinh nghe nghiep", "thang tien", "performance review", "appraisal",
		}},
		{Key: "cert_sponsorship", Label: "Chung chi/Khoa hoc", Any: []string{
			"certification", "exam reimbursement", "education budget", "conference fee",
			"tai tro chung chi", "tai tro khoa hoc", "hoc bong noi bo",
		}},
		{Key: "mentoring", Label: "Mentoring/Coaching", Any: []string{
			"mentoring", "mentor", "mentorship", "coaching", "buddy program",
		}},
	}},
	{Key: "VanHoa-Team", Items: []benefitItem{
		{Key: "team_building", Label: "Team building/Trip", Any: []string{
			"team building", "company trip", "annual trip", "du lich", "outing", "offsite",
		}},
		{Key: "year_end_party", Label: "Year End Party/Events", Any: []string{
			"year end party", "year-end party", "company event", "su kien noi bo", "year end celebration",
		}},
		{Key: "sports", Label: "Giai the thao", Any: []string{
			"football tournament", "giai bong da", "the thao", "sports day", "sports activities",
		}},
		{Key: "snacks", Label: "Tea break/Snacks/Pantry", Any: []string{
			"tea break", "snack", "snacks", "pantry", "free coffee", "free beer", "do an nhe",
		}},
		{Key: "birthday_gifts", Label: "Qua sinh nhat/Le", Any: []string{
			"birthday gift", "sinh nhat", "holiday gift", "sinh nhat cong ty",
		}},
		{Key: "library", Label: "Thu vien/Resources", Any: []string{
			"library", "thu vien", "tai lieu hoc tap",
		}},
		{Key: "pet_friendly", Label: "Pet-friendly", Any: []string{
			"pet-friendly", "pet friendly",
		}},
	}},
	{Key: "PhuCap-CanTin", Items: []benefitItem{
		{Key: "meal_allowance", Label: "An trua/Canteen", Any: []string{
			"meal allowance", "lunch allowance", "meal provided", "lunch provided",
			"canteen", "cafeteria", "an trua", "can tin", "bua trua",
		}},
		{Key: "phone_allowance", Label: "Phu cap dien thoai", Any: []string{
			"mobile allowance", "phone allowance", "data plan", "phu cap dien thoai", "tro cap dien thoai",
		}},
		{Key: "transport_parking", Label: "Xang xe/Di lai/Parking", Any: []string{
			"transport allowance", "commute allowance", "parking fee", "parking support",
			"xang xe", "phi gui xe", "tro cap di lai",
		}},
		{Key: "travel_per_diem", Label: "Cong tac phi/Per diem", Any: []string{
			"per diem", "travel allowance", "travel reimbursement", "cong tac phi", "di cong tac", "business travel",
		}},
		{Key: "housing", Label: "Nha o/KTX/Accommodation", Any: []string{
			"housing", "accommodation", "hostel", "dormitory", "ktx", "nha o", "o tro",
		}},
		{Key: "childcare", Label: "Ho tro nha tre", Any: []string{
			"childcare", "child care", "child allowance", "nha tre", "giu tre", "daycare",
		}},
		{Key: "internet_remote", Label: "Phu cap Internet/WFH", Any: []string{
			"internet allowance", "internet reimbursement", "remote work support", "wifi allowance",
		}},
		{Key: "relocation_visa", Label: "Relocation/Visa", Any: []string{
			"relocation", "relocation package", "visa sponsorship", "work permit", "work visa",
		}},
	}},
	{Key: "ThietBi-CongCu", Items: []benefitItem{
		{Key: "laptop_pc", Label: "Laptop/PC/MacBook", Any: []string{
			"laptop", "macbook", "workstation", "may tinh xach tay", "company laptop", "issued laptop",
		}},
		{Key: "monitor_accessories", Label: "Man hinh/Phu kien", Any: []string{
			"monitor", "man hinh", "keyboard", "headset", "docking",
		}},
		{Key: "work_tools", Label: "Thiet bi/Dung cu/PPE", Any: []string{
			"ppe", "bao ho lao dong", "protective equipment", "thiet bi", "dung cu", "gear provided",
		}},
		{Key: "uniform", Label: "Dong phuc", Any: []string{
			"uniform", "dong phuc", "uniform provided",
		}},
		{Key: "phone_device", Label: "Sim/Thiet bi dien thoai", Any: []string{
			"company phone", "sim card", "mobile device",
		}},
		{Key: "parking_slot", Label: "Cho gui xe/Do xe", Any: []string{
			"parking", "gui xe", "do xe", "parking slot",
		}},
	}},
	{Key: "XeDuaDon", Items: []benefitItem{
		{Key: "shuttle_bus", Label: "Xe dua don/Bus tuyen", Any: []string{
			"shuttle bus", "company bus", "xe dua don", "shuttle service",
		}},
		{Key: "fixed_travel_allowance", Label: "Tro cap di lai co dinh", Any: []string{
			"travel allowance", "transport stipend", "phu cap di lai", "commute stipend",
		}},
	}},
}

func containsAllSets(text string, sets [][]string) bool {
	for _, set := range sets {
		ok := true
		for _, t := range set {
			if !ContainsToken(text, []string{t}) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// DetectBenefits scans listing text for benefit evidence and returns the
// found item labels grouped by taxonomy group key. Input is concatenated
// and normalized here, callers pass the raw column texts.
func DetectBenefits(texts ...string) map[string][]string {
	norm := Normalize(strings.Join(texts, " \n "))
	// "wfh" is folded into its long form so one token covers both.
	norm = strings.ReplaceAll(norm, "wfh", "work from home")
	if norm == "" {
		return nil
	}

	found := make(map[string][]string)
	for _, g := range benefitGroups {
		for _, it := range g.Items {
			hit := ContainsToken(norm, it.Any)
			if !hit && len(it.All) > 0 {
				hit = containsAllSets(norm, it.All)
			}
			if hit {
				found[g.Key] = append(found[g.Key], it.Label)
			}
		}
	}
	return found
}

// SummarizeBenefits renders the detection result as a stable one-line
// summary per group plus the total item count.
func SummarizeBenefits(found map[string][]string) (string, int) {
	var parts []string
	total := 0
	for _, g := range benefitGroups {
		items := append([]string(nil), found[g.Key]...)
		if len(items) == 0 {
			continue
		}
		sort.Strings(items)
		parts = append(parts, fmt.Sprintf("%s: %s", g.Key, strings.Join(items, "; ")))
		total += len(items)
	}
	return strings.Join(parts, " | "), total
}
