package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation 所有 DTO 校验失败都包装此错误
var ErrValidation = errors.New("参数校验失败")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: 字段 [%s] 校验失败，规则 [%s]",
				ErrValidation,
				firstError.Field(),
				firstError.Tag())
		}
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}
