package models

// CategoryKind restricts which transaction types a category is meant for.
type CategoryKind string

// Category is used only to label totals; no calculation depends on its fields.
type Category struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Kind  CategoryKind `json:"kind" yaml:"kind"`
	Color string       `json:"color,omitempty" yaml:"color,omitempty"`
	Icon  string       `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// CategoriesConfig is the top-level structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []Category `yaml:"categories"`
}

// IndexCategories maps categories by id. Later duplicates win.
func IndexCategories(categories []Category) map[string]Category {
	index := make(map[string]Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}
