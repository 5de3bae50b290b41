package catalog

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Condition   string  `json:"condition"`
	PricePerDay float64 `json:"price_per_day" binding:"required,gt=0"`
	Value       float64 `json:"value" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	PricePerDay *float64 `json:"price_per_day"`
	Value       *float64 `json:"value"`
	Available   *bool    `json:"available"`
	ImageURL    *string  `json:"image_url"`
}
