package types

// Option lists offered by the input form. The model is not restricted to
// these values; they only drive the form and CLI flag validation.

var IndustryOptions = []string{
	"Tech",
	"Healthcare",
	"Education",
	"E-commerce",
	"Finance",
	"Retail",
	"Food & Beverage",
	"Real Estate",
	"Media & Entertainment",
	"Sustainability",
	"Travel & Hospitality",
	"Automotive",
}

var BudgetRangeOptions = []string{
	"$0-$10k",
	"$10k-$50k",
	"$50k-$100k",
	"$100k+",
}

var TimeToMarketOptions = []string{
	"1-3 months",
	"3-6 months",
	"6-12 months",
	"12+ months",
}

var SkillOptions = []string{
	"Technical",
	"Marketing",
	"Design",
	"Sales",
	"Finance",
	"Operations",
	"Customer Service",
	"Content Creation",
}

// KnownBudgetRange reports whether s is one of the form's budget ranges.
// An empty string is allowed (unset).
func KnownBudgetRange(s string) bool {
	if s == "" {
		return true
	}
	for _, b := range BudgetRangeOptions {
		if b == s {
			return true
		}
	}
	return false
}
