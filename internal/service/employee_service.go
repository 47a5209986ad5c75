package service

import (
	"strings"

	"github.com/gehna-next/internal/models"
	"github.com/gehna-next/internal/repository"
)

// EmployeeService 员工管理服务
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService 创建员工服务实例
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// EmployeeInput 员工信息输入
type EmployeeInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateEmployee 创建员工
func (s *EmployeeService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		Name:     strings.TrimSpace(input.Name),
		Phone:    strings.TrimSpace(input.Phone),
		Email:    strings.TrimSpace(input.Email),
		Address:  strings.TrimSpace(input.Address),
		IsActive: true,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// GetEmployee 获取员工
func (s *EmployeeService) GetEmployee(id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// ListEmployees 查询员工列表
func (s *EmployeeService) ListEmployees(filter repository.EmployeeListFilter) ([]models.Employee, int64, error) {
	return s.employeeRepo.List(filter)
}

// UpdateEmployee 更新员工信息
func (s *EmployeeService) UpdateEmployee(id uint, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":    strings.TrimSpace(input.Name),
		"phone":   strings.TrimSpace(input.Phone),
		"email":   strings.TrimSpace(input.Email),
		"address": strings.TrimSpace(input.Address),
	}
	if err := s.employeeRepo.Update(employee.ID, updates); err != nil {
		return nil, err
	}
	return s.GetEmployee(employee.ID)
}

// DeactivateEmployee 停用员工
func (s *EmployeeService) DeactivateEmployee(id uint) error {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return err
	}
	return s.employeeRepo.Update(employee.ID, map[string]interface{}{"is_active": false})
}
