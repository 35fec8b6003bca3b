package models

// User is kept for the account operations of the storage layer. No HTTP route
// exposes it.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}
