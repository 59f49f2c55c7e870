package core

// Category is a fixed catalog entry. The catalog is read-only: users pick
// from it but never edit it.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
}

// categories is the complete fixed catalog: 4 income entries in the green
// palette, 8 expense entries in the red/amber palettes.
var categories = []Category{
	{ID: "salary", Name: "Salary", Type: Income, Color: "#10B981", Icon: "Wallet"},
	{ID: "freelance", Name: "Freelance", Type: Income, Color: "#059669", Icon: "Briefcase"},
	{ID: "investment", Name: "Investment", Type: Income, Color: "#047857", Icon: "TrendingUp"},
	{ID: "other-income", Name: "Other Income", Type: Income, Color: "#065F46", Icon: "PiggyBank"},
	{ID: "rent", Name: "Rent/Mortgage", Type: Expense, Color: "#EF4444", Icon: "Home"},
	{ID: "transport", Name: "Transport", Type: Expense, Color: "#DC2626", Icon: "Car"},
	{ID: "food", Name: "Food/Groceries", Type: Expense, Color: "#B91C1C", Icon: "ShoppingCart"},
	{ID: "entertainment", Name: "Entertainment", Type: Expense, Color: "#991B1B", Icon: "Film"},
	{ID: "utilities", Name: "Utilities", Type: Expense, Color: "#F59E0B", Icon: "Lightbulb"},
	{ID: "healthcare", Name: "Healthcare", Type: Expense, Color: "#D97706", Icon: "Heart"},
	{ID: "shopping", Name: "Shopping", Type: Expense, Color: "#B45309", Icon: "ShoppingBag"},
	{ID: "other-expense", Name: "Other Expense", Type: Expense, Color: "#92400E", Icon: "MoreHorizontal"},
}

var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}()

// Categories returns the full catalog in display order. The returned slice
// is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a catalog entry by id.
func CategoryByID(id string) (Category, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}

// CategoriesByType returns the catalog entries of the given type, in display
// order.
func CategoriesByType(t TransactionType) []Category {
	var out []Category
	for _, c := range categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
