package models

// UserModel is an admin identity. Password is a bcrypt hash.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
	Role     string `json:"role"     gorm:"type:varchar(16);default:'admin'"`
}

func (UserModel) TableName() string { return "users" }
