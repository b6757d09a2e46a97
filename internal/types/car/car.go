package car

// CreateCar - форма для создания объявления об автомобиле.
// Картинки передаются отдельно, уже в виде публичных URL.
type CreateCar struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	Color        string  `json:"color"`
	FuelType     string  `json:"fuelType"`
	Transmission string  `json:"transmission"`
	BodyType     string  `json:"bodyType"`
	Seats        *int    `json:"seats"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Featured     bool    `json:"featured"`
}

// UpdateCar - частичное обновление, nil поля не трогаем
type UpdateCar struct {
	Make         *string  `json:"make"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Price        *float64 `json:"price"`
	Mileage      *int     `json:"mileage"`
	Color        *string  `json:"color"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	BodyType     *string  `json:"bodyType"`
	Seats        *int     `json:"seats"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
	Featured     *bool    `json:"featured"`
}

// UpdateStatus - форма смены статуса и флага featured из админки
type UpdateStatus struct {
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

// CarForm - тело запросов создания/редактирования из админки
type CarForm struct {
	CarData CreateCar `json:"carData"`
	Images  []string  `json:"images"`
}

// CarUpdateForm - тело запроса редактирования
type CarUpdateForm struct {
	CarData UpdateCar `json:"carData"`
	Images  []string  `json:"images"`
}
