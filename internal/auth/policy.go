package auth

import (
	"strings"

	"vehiql-main/internal/user"
)

// Policy - правила, по которым пользователь считается администратором.
// Заполняется из конфигурации и передается в middleware при сборке приложения.
type Policy struct {
	// Override делает администратором любого аутентифицированного пользователя (только для локальной разработки)
	Override bool `yaml:"override"`
	// Emails - список почт администраторов
	Emails []string `yaml:"emails"`
	// EmailMarker - подстрока в почте, дающая права администратора; пустая строка отключает правило
	EmailMarker string `yaml:"email_marker"`
}

// IsAdmin решает, может ли пользователь управлять объявлениями.
// u может быть nil, если пользователь не найден в базе: тогда учитывается только почта из сессии.
func (p Policy) IsAdmin(email string, u *user.User) bool {
	if p.Override {
		return true
	}

	if u != nil {
		if u.Role == user.RoleAdmin {
			return true
		}
		if email == "" {
			email = u.Email
		}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}

	for _, allowed := range p.Emails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}

	if p.EmailMarker != "" && strings.Contains(email, strings.ToLower(p.EmailMarker)) {
		return true
	}

	return false
}
