package models

// TodoTable is the name of the relational table holding todos.
const TodoTable = "todos"

// Column names of TodoTable, in the order repositories select them.
const (
	ColumnID          = "id"
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnComplete    = "complete"
)

// TodoColumns lists the selectable columns in scan order.
var TodoColumns = []string{ColumnID, ColumnTitle, ColumnDescription, ColumnComplete}

// Length limits enforced at the API boundary.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMinLength = 5
	DescriptionMaxLength = 10000
)

// Property documents one field of the public todo schema.
type Property struct {
	Name        string
	Type        string
	Description string
	Example     any
	MinLength   int
	MaxLength   int
}

// TodoProperties documents the todo record as exposed by the API, in
// field order. It is the single source for the OpenAPI schemas.
var TodoProperties = []Property{
	{
		Name:        "id",
		Type:        "integer",
		Description: "unique identifier",
		Example:     1,
	},
	{
		Name:        "title",
		Type:        "string",
		Description: "The title of the todo",
		Example:     "Buy groceries",
		MinLength:   TitleMinLength,
		MaxLength:   TitleMaxLength,
	},
	{
		Name:        "description",
		Type:        "string",
		Description: "A detailed description of the todo",
		Example:     "Milk, bread, and eggs",
		MinLength:   DescriptionMinLength,
		MaxLength:   DescriptionMaxLength,
	},
	{
		Name:        "complete",
		Type:        "boolean",
		Description: "Indicates whether the todo is complete.",
		Example:     false,
	},
}

// LookupProperty returns the documented property with the given name.
func LookupProperty(name string) (Property, bool) {
	for _, p := range TodoProperties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
