package user

type UserModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:255;not null"`
}

func (UserModel) TableName() string { return "users" }
