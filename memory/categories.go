package memory

// Category classifies a stored fact. The set is closed: the extraction
// prompt enumerates exactly these values and the validator drops anything
// else, so no other value can reach storage.
type Category string

const (
	CategoryPreference Category = "preference"
	CategoryDislike    Category = "dislike"
	CategoryFavorite   Category = "favorite"
	CategoryAllergy    Category = "allergy"
	CategoryFamilyInfo Category = "family_info"
	CategorySchedule   Category = "schedule"
	CategoryBudget     Category = "budget"
	CategoryCookingTip Category = "cooking_tip"
)

// Categories lists every valid category, in the order the extraction prompt
// presents them. Both the prompt and the validator derive from this slice.
var Categories = []Category{
	CategoryPreference,
	CategoryDislike,
	CategoryFavorite,
	CategoryAllergy,
	CategoryFamilyInfo,
	CategorySchedule,
	CategoryBudget,
	CategoryCookingTip,
}

var validCategories = func() map[Category]bool {
	m := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// IsValidCategory reports whether s is a member of the closed category set.
func IsValidCategory(s string) bool {
	return validCategories[Category(s)]
}
