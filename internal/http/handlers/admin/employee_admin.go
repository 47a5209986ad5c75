package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gehna-next/internal/http/handlers/shared"
	"github.com/gehna-next/internal/http/response"
	"github.com/gehna-next/internal/repository"
	"github.com/gehna-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateEmployee 创建员工
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req service.EmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	employee, err := h.EmployeeService.CreateEmployee(req)
	if err != nil {
		respondError(c, response.CodeInternal, "创建员工失败", err)
		return
	}

	response.Success(c, employee)
}

// ListEmployees 获取员工列表
func (h *Handler) ListEmployees(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	employees, total, err := h.EmployeeService.ListEmployees(repository.EmployeeListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取员工列表失败", err)
		return
	}

	response.SuccessWithPage(c, employees, response.BuildPagination(page, pageSize, total))
}

// GetEmployee 获取员工详情
func (h *Handler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "员工 ID 无效", nil)
		return
	}

	employee, err := h.EmployeeService.GetEmployee(uint(id))
	if err != nil {
		respondWithMappedError(c, err, employeeErrorRules, response.CodeInternal, "获取员工失败")
		return
	}

	response.Success(c, employee)
}

// UpdateEmployee 更新员工资料
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "员工 ID 无效", nil)
		return
	}

	var req service.EmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	employee, err := h.EmployeeService.UpdateEmployee(uint(id), req)
	if err != nil {
		respondWithMappedError(c, err, employeeErrorRules, response.CodeInternal, "更新员工失败")
		return
	}

	response.Success(c, employee)
}

// DeactivateEmployee 停用员工
func (h *Handler) DeactivateEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "员工 ID 无效", nil)
		return
	}

	if err := h.EmployeeService.DeactivateEmployee(uint(id)); err != nil {
		respondWithMappedError(c, err, employeeErrorRules, response.CodeInternal, "停用员工失败")
		return
	}

	response.Success(c, nil)
}
