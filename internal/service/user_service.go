package service

import (
	"errors"
	"fmt"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Username   string  `json:"username" binding:"required"`
	Password   string  `json:"password" binding:"required,min=6"`
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role" binding:"required,oneof=admin factory warehouse production store"`
	StoreID    *string `json:"store_id"`
	Department string  `json:"department"`
}

func (s *UserService) Create(req CreateUserRequest) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("加密密码失败: %w", err)
	}
	u := &entity.User{
		ID:         uuid.New().String(),
		Username:   req.Username,
		Password:   string(hash),
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		StoreID:    req.StoreID,
		Department: req.Department,
		Status:     entity.UserStatusActive,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return u, nil
}

func (s *UserService) GetByID(id string) (*entity.User, error) {
	u, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List() ([]entity.User, error) {
	return s.userRepo.List()
}

type UpdateUserRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role" binding:"required,oneof=admin factory warehouse production store"`
	StoreID    *string `json:"store_id"`
	Department string  `json:"department"`
	Status     string  `json:"status"`
	Password   string  `json:"password"`
}

// Update 编辑用户，password 留空表示不改密码
func (s *UserService) Update(id string, req UpdateUserRequest) (*entity.User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	u.FullName = req.FullName
	u.Email = req.Email
	u.Phone = req.Phone
	u.Role = req.Role
	u.StoreID = req.StoreID
	u.Department = req.Department
	if req.Status != "" {
		u.Status = req.Status
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("加密密码失败: %w", err)
		}
		u.Password = string(hash)
	}
	if err := s.userRepo.Update(u); err != nil {
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}
	return u, nil
}

func (s *UserService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
