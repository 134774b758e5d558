package domain

// Роли пользователей.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Claims — данные, извлечённые из bearer-токена.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin — есть ли у владельца токена права администратора.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
