package panelapi

// Category is a menu section. Names are kept in Turkish and English.
type Category struct {
	ID     string `json:"id"`
	Slug   string `json:"slug,omitempty"`
	NameTr string `json:"nameTr"`
	NameEn string `json:"nameEn"`
}

type CategoryRequest struct {
	NameTr string `json:"nameTr"`
	NameEn string `json:"nameEn"`
}

// MenuItem belongs to exactly one category. Price2 is the optional second
// serving size and is zero when unused.
type MenuItem struct {
	ID            string  `json:"id"`
	CategoryID    string  `json:"categoryId"`
	Name          string  `json:"name"`
	NameEn        string  `json:"nameEn"`
	DescriptionTr string  `json:"descriptionTr,omitempty"`
	DescriptionEn string  `json:"descriptionEn,omitempty"`
	Price1        float64 `json:"price1"`
	Price2        float64 `json:"price2"`
}

// MenuItemRequest creates or updates an item. CategoryID is only read on create.
type MenuItemRequest struct {
	CategoryID    string  `json:"categoryId,omitempty"`
	Name          string  `json:"name"`
	NameEn        string  `json:"nameEn"`
	DescriptionTr string  `json:"descriptionTr,omitempty"`
	DescriptionEn string  `json:"descriptionEn,omitempty"`
	Price1        float64 `json:"price1"`
	Price2        float64 `json:"price2"`
}
