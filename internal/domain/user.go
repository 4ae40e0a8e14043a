package domain

// User id 由库生成后不可变；name 允许空串但不能缺省
type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	List() ([]User, error)
}
