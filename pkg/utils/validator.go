package utils

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"task-manager-api/domain/dto"
)

var validate = newValidator()

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New()

	// ใช้ชื่อ json ใน error details
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Optional ที่ไม่ได้ส่งมาหรือเป็น null จะถูกมองเป็น nil (omitempty ข้ามได้)
	v.RegisterCustomTypeFunc(optionalString, dto.Optional[string]{})
	v.RegisterCustomTypeFunc(optionalValue[int], dto.Optional[int]{})
	v.RegisterCustomTypeFunc(optionalValue[time.Time], dto.Optional[time.Time]{})
	v.RegisterCustomTypeFunc(optionalValue[uuid.UUID], dto.Optional[uuid.UUID]{})
	v.RegisterCustomTypeFunc(optionalValue[[]uuid.UUID], dto.Optional[[]uuid.UUID]{})

	return v
}

// optionalValue คืน pointer เมื่อมีค่า ทำให้ omitempty ไม่ข้ามค่า zero ที่ส่งมาจริง (เช่น priority 0)
func optionalValue[T any](field reflect.Value) interface{} {
	opt, ok := field.Interface().(dto.Optional[T])
	if !ok || !opt.HasValue() {
		return nil
	}
	return &opt.Value
}

// optionalString คืนค่าตรงๆ: string ว่างถือว่าไม่ได้ส่ง (title/name ว่างถูกข้ามที่ service)
func optionalString(field reflect.Value) interface{} {
	opt, ok := field.Interface().(dto.Optional[string])
	if !ok || !opt.HasValue() {
		return nil
	}
	return opt.Value
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidationErrors(err error) []ValidationError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "", Tag: "invalid", Message: err.Error()}}
	}

	result := make([]ValidationError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return result
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
