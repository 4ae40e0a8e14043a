package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlosfcruz/DevOpsProject/internal/domain"
	"github.com/carlosfcruz/DevOpsProject/internal/repo"
	httpez "github.com/carlosfcruz/DevOpsProject/internal/transport/http/ez"
)

type userOut struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func mountUserActions(g *gin.RouterGroup, db *gorm.DB) {
	ez := httpez.New(g)

	// POST /users  name 取 query，其次 form；两处都没有算缺参
	httpez.RegisterAction[struct{}, userOut](ez, db, httpez.Action[struct{}, userOut]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (userOut, error) {
			name, ok := c.GetQuery("name")
			if !ok {
				name, ok = c.GetPostForm("name")
			}
			if !ok {
				return userOut{}, httpez.BadRequest("name is required")
			}
			u := domain.User{Name: name}
			if err := repo.NewUserRepo(tx).Create(&u); err != nil {
				return userOut{}, httpez.Internal("create user failed", err)
			}
			return userOut{ID: u.ID, Name: u.Name}, nil
		},
	})

	// GET /users  全量，id 升序；空表返回 []
	httpez.RegisterAction[struct{}, []userOut](ez, db, httpez.Action[struct{}, []userOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]userOut, error) {
			users, err := repo.NewUserRepo(tx).List()
			if err != nil {
				return nil, httpez.Internal("list users failed", err)
			}
			out := make([]userOut, 0, len(users))
			for _, u := range users {
				out = append(out, userOut{ID: u.ID, Name: u.Name})
			}
			return out, nil
		},
	})
}
