package elastic

// CarDoc - структура документа объявления для хранения в ES
type CarDoc struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year,omitempty"`
	Price        float64 `json:"price"`
	BodyType     string  `json:"body_type,omitempty"`
	FuelType     string  `json:"fuel_type,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
}
