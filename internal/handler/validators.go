package handler

import (
	"fmt"

	"fulfillment/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var enumRules = map[string]func(string) bool{
	"reason_code":       func(s string) bool { return model.ReasonCode(s).Valid() },
	"return_type":       func(s string) bool { return model.ReturnType(s).Valid() },
	"refund_method":     func(s string) bool { return model.RefundMethod(s).Valid() },
	"overall_condition": func(s string) bool { return model.OverallCondition(s).Valid() },
	"disposition":       func(s string) bool { return model.Disposition(s).Valid() },
	"damage_type":       func(s string) bool { return model.DamageType(s).Valid() },
	"damage_severity":   func(s string) bool { return model.DamageSeverity(s).Valid() },
	"damage_status":     func(s string) bool { return model.DamageStatus(s).Valid() },
	"damage_source":     func(s string) bool { return model.DamageSource(s).Valid() },
}

// RegisterValidators installs the enum tags used by request DTOs on gin's
// binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	for tag, valid := range enumRules {
		valid := valid
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
