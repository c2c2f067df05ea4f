package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/squirrels/internal/progress"
	"github.com/limbo/squirrels/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

type catalogCtxKey struct{}

// withCatalog lets known_challenge check against the tracker's own catalog.
func withCatalog(ctx context.Context, catalog *entity.Catalog) context.Context {
	return context.WithValue(ctx, catalogCtxKey{}, catalog)
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			v := fl.Field().Float()
			return !math.IsNaN(v) && !math.IsInf(v, 0)
		})
		validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(progress.DateLayout, fl.Field().String())
			return err == nil
		})
		validate.RegisterValidationCtx("known_challenge", func(ctx context.Context, fl validator.FieldLevel) bool {
			catalog, ok := ctx.Value(catalogCtxKey{}).(*entity.Catalog)
			if !ok || catalog == nil {
				catalog = entity.DefaultCatalog()
			}
			_, known := catalog.Lookup(entity.ChallengeID(fl.Field().String()))
			return known
		})
	})
}
