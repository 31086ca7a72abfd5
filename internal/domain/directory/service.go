package directory

import (
	"context"
	"errors"

	"talenthub/internal/domain/auth"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type RegisterParams struct {
	Email      string
	Password   string
	FullName   string
	Phone      *string
	Address    *string
	SSN        *string
	Department *string
	Role       string
}

// Register creates a new employee account. The email uniqueness constraint
// covers all rows, tombstoned included; an address freed by tombstoning may
// be registered again.
func (s *Service) Register(ctx context.Context, params RegisterParams) (Employee, error) {
	if _, err := s.store.FindByEmail(ctx, params.Email); err == nil {
		return Employee{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Employee{}, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return Employee{}, err
	}

	role := params.Role
	if auth.ParseRole(role) == auth.RoleUnknown {
		role = auth.RoleEmployee.String()
	}

	return s.store.Create(ctx, CreateParams{
		Email:        params.Email,
		PasswordHash: hash,
		FullName:     params.FullName,
		Phone:        params.Phone,
		Address:      params.Address,
		SSN:          params.SSN,
		Department:   params.Department,
		Role:         role,
	})
}

// Authenticate verifies credentials. The credential failure is deliberately
// indistinguishable between unknown email and wrong password; a tombstoned
// account fails with ErrAccountDeleted even if the stored hash matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Employee, error) {
	emp, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Employee{}, ErrInvalidCredentials
		}
		return Employee{}, err
	}

	if err := auth.CheckPassword(emp.PasswordHash, password); err != nil {
		return Employee{}, ErrInvalidCredentials
	}

	if emp.IsDeleted {
		return Employee{}, ErrAccountDeleted
	}
	return emp, nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

// GetActive is the directory read used by employee endpoints: tombstoned
// records are reported as absent.
func (s *Service) GetActive(ctx context.Context, id string) (Employee, error) {
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if emp.IsDeleted {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

// Update applies a profile update. Role and manager changes are only applied
// when allowRoleChange is set, which the handler grants to HR and admin.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams, allowRoleChange bool) (Employee, error) {
	if !allowRoleChange {
		params.Role = nil
		params.ManagerID = nil
	}
	if params.Role != nil && auth.ParseRole(*params.Role) == auth.RoleUnknown {
		params.Role = nil
	}
	return s.store.Update(ctx, id, params)
}

func (s *Service) ListActive(ctx context.Context) ([]Employee, error) {
	return s.store.ListActive(ctx)
}
