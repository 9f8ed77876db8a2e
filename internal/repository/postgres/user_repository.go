package postgres

import (
	"context"
	"errors"

	"github.com/Sandeep-S-M/FarmConn/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	row := r.DB.WithContext(ctx).Save(user)
	if err := row.Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	row := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_verified", isVerified)
	if err := row.Error; err != nil {
		return err
	}
	if row.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Search(ctx context.Context, query string) ([]domain.User, error) {
	var users []domain.User

	like := "%" + query + "%"
	err := r.DB.WithContext(ctx).Where("username ILIKE ?", like).Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
