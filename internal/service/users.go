package service

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

type UserService interface {
	Get(id int64) (*models.User, error)
	// Put replaces the user's password, creating the account when the id
	// is unknown. The bool reports whether the create branch ran.
	Put(id int64, username, password string) (*models.User, bool, error)
	Delete(id int64) error
	List() ([]models.User, error)
}

type userService struct {
	repo     repository.UserRepository
	upserter *Upserter[int64, models.User]
	log      *zap.Logger
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		repo:     repo,
		upserter: NewUpserter[int64, models.User](userStore{repo: repo}),
		log:      log,
	}
}

func (s *userService) Get(id int64) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) Put(id int64, username, password string) (*models.User, bool, error) {
	passwordHash, err := hashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.upserter.Put(id,
		func() *models.User {
			return &models.User{
				ID:           id,
				Username:     username,
				PasswordHash: passwordHash,
				Role:         models.RoleUser,
			}
		},
		func(u *models.User) {
			u.PasswordHash = passwordHash
		})
}

func (s *userService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *userService) List() ([]models.User, error) {
	return s.repo.List()
}

// userStore adapts the user repository to the upsert coordinator. Users are
// keyed by id, and the only mutable field is the password hash.
type userStore struct {
	repo repository.UserRepository
}

func (s userStore) Get(id int64) (*models.User, error) { return s.repo.GetByID(id) }
func (s userStore) Insert(u *models.User) error        { return s.repo.CreateWithID(u) }
func (s userStore) Update(u *models.User) error {
	return s.repo.UpdatePassword(u.ID, u.PasswordHash)
}
