package domain

// Category groups transactions of a single type.
type Category struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userID"`
	Type       TransactionType `json:"type"`
	Name       string          `json:"name"`
	Icon       *string         `json:"icon,omitempty"`
	Color      *string         `json:"color,omitempty"`
	Position   int             `json:"position"`
	IsArchived bool            `json:"isArchived"`
	AuditFields
}

// CategoryPatch holds the optional mutable attributes of a category.
type CategoryPatch struct {
	Name       *string
	Icon       *string
	Color      *string
	Position   *int
	IsArchived *bool
}

// DefaultCategory is a seed entry created for every new user.
type DefaultCategory struct {
	Type TransactionType
	Name string
	Icon string
}

// DefaultCategories are seeded on user creation, in display order.
var DefaultCategories = []DefaultCategory{
	{Expense, "Groceries", "🛒"},
	{Expense, "Restaurants", "🍽️"},
	{Expense, "Transport", "🚌"},
	{Expense, "Housing", "🏠"},
	{Expense, "Utilities", "💡"},
	{Expense, "Health", "💊"},
	{Expense, "Entertainment", "🎬"},
	{Expense, "Shopping", "🛍️"},
	{Expense, "Education", "📚"},
	{Expense, "Travel", "✈️"},
	{Expense, "Other", "📦"},
	{Income, "Salary", "💼"},
	{Income, "Freelance", "🧑‍💻"},
	{Income, "Gifts", "🎁"},
	{Income, "Investments", "📈"},
	{Income, "Other", "💰"},
}
