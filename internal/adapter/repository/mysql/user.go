package mysql

import (
	"context"
	"errors"

	userDomain "loanchain-web/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// Seed inserts the given users unless a row with the same username exists.
func (r *UserRepository) Seed(ctx context.Context, users []userDomain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := &UserRepository{db: tx}
		for i := range users {
			ok, err := repo.ExistsByUsername(ctx, users[i].Username)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			u := users[i]
			if err := repo.Create(ctx, &u); err != nil {
				return err
			}
		}
		return nil
	})
}
