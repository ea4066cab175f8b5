package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/JonnyWalker81/habitmood/backend/internal/calendar"
	"github.com/JonnyWalker81/habitmood/backend/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator and
// makes field errors report JSON names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
			return calendar.IsDate(fl.Field().String())
		})
		_ = v.RegisterValidation("log_status", func(fl validator.FieldLevel) bool {
			return models.LogStatus(fl.Field().String()).Valid()
		})
	})
}

// jsonFieldName returns the request-level path of a failed field, e.g. habits[0].id
func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	// Drop the leading struct type name
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
