package repo

import (
	"gorm.io/gorm"

	"github.com/carlosfcruz/DevOpsProject/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Create 单行写入，各自成一笔事务；失败原样上抛
func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

// List 全量返回，id 升序保证顺序确定（库默认顺序不可依赖）
func (r *UserRepo) List() ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.Order("id asc").Find(&users).Error
	return users, err
}
