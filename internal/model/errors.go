/**
 * 模型:错误定义
 * @author: sun977
 * @date: 2025.12.20
 * @description: 业务错误分类定义,携带字段级错误信息供客户端展示
 * @func: AppError 结构体、各类错误构造函数与判定函数
 */
package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind 错误分类
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation" // 输入校验失败 -> 400
	ErrKindNotFound   ErrorKind = "not_found"  // 实体不存在或已软删除 -> 404
	ErrKindConflict   ErrorKind = "conflict"   // 唯一性冲突或引用保护 -> 409
	ErrKindStorage    ErrorKind = "storage"    // 底层存储失败 -> 500
)

// FieldError 字段级错误信息
// 与前端约定的 (value, property, constraint) 三元组
type FieldError struct {
	Value      string   `json:"value"`      // 触发错误的值
	Property   string   `json:"property"`   // 字段名
	Constraint []string `json:"constraint"` // 错误说明
}

// AppError 业务错误
// 所有捕获的异常要么重新抛出，要么映射为本类型之一，不允许静默吞掉
type AppError struct {
	Kind    ErrorKind    `json:"kind"`             // 错误分类
	Message string       `json:"message"`          // 错误消息
	Fields  []FieldError `json:"fields,omitempty"` // 字段级错误列表
	cause   error        // 底层错误，不对外暴露
}

// Error 实现error接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.cause
}

// HTTPStatus 错误分类到HTTP状态码的映射
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError 创建输入校验错误
func NewValidationError(property, value, message string) *AppError {
	return &AppError{
		Kind:    ErrKindValidation,
		Message: message,
		Fields: []FieldError{{
			Value:      value,
			Property:   property,
			Constraint: []string{message},
		}},
	}
}

// NewNotFoundError 创建实体不存在错误
func NewNotFoundError(property, value string) *AppError {
	message := fmt.Sprintf("%s does NOT found", property)
	return &AppError{
		Kind:    ErrKindNotFound,
		Message: message,
		Fields: []FieldError{{
			Value:      value,
			Property:   property,
			Constraint: []string{message},
		}},
	}
}

// NewConflictError 创建冲突错误
func NewConflictError(property, value, message string) *AppError {
	return &AppError{
		Kind:    ErrKindConflict,
		Message: message,
		Fields: []FieldError{{
			Value:      value,
			Property:   property,
			Constraint: []string{message},
		}},
	}
}

// NewStorageError 包装底层存储错误
// 对外只暴露通用消息，内部错误通过 Unwrap 供日志层记录
func NewStorageError(err error) *AppError {
	return &AppError{
		Kind:    ErrKindStorage,
		Message: "internal storage error",
		cause:   err,
	}
}

// AsAppError 提取业务错误,普通error归类为存储错误
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewStorageError(err)
}

// IsKind 检查错误是否属于指定分类
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool { return IsKind(err, ErrKindValidation) }

// IsNotFoundError 检查是否为不存在错误
func IsNotFoundError(err error) bool { return IsKind(err, ErrKindNotFound) }

// IsConflictError 检查是否为冲突错误
func IsConflictError(err error) bool { return IsKind(err, ErrKindConflict) }
