package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cafemanagement/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	// UpdateApprovalStatus reports whether any row was affected; a zero-row
	// update is false, not an error.
	UpdateApprovalStatus(ctx context.Context, id uint, status model.ApprovalStatus) (bool, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	return translate(err, "user not found", "username or email already registered")
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if err != nil {
		return nil, translate(err, "user not found", "")
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	return translate(err, "user not found", "username or email already registered")
}

func (r *userRepo) UpdateApprovalStatus(ctx context.Context, id uint, status model.ApprovalStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("approval_status", status)
	if res.Error != nil {
		return false, translate(res.Error, "user not found", "")
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_login", at).Error
	return translate(err, "user not found", "")
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	// Hard delete — the workflow has no soft-delete for accounts.
	err := r.db.WithContext(ctx).Delete(&model.User{}, id).Error
	return translate(err, "user not found", "")
}
