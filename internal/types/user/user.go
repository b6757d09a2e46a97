package user

// CreateUser - форма регистрации
type CreateUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ImageURL string `json:"image_url"`
	Password string `json:"password"`
}

// LoginForm - форма входа
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRole - смена роли пользователя из админки
type UpdateRole struct {
	Role string `json:"role"`
}
