package delivery

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var setupBindingOnce sync.Once

// setupBinding configures how prices travel over HTTP: decimals are written as JSON numbers,
// and gin's validator learns about decimal prices and JSON field names.
func setupBinding() {
	setupBindingOnce.Do(func() {
		decimal.MarshalJSONWithoutQuotes = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

type categoryRequest struct {
	Name string `json:"nome" binding:"required,max=100"`
}

type productRequest struct {
	Name       string          `json:"nome" binding:"required,max=150"`
	Price      decimal.Decimal `json:"preco" binding:"gte=0,lt=10000000000000000"` // NUMERIC(18,2)
	Stock      int             `json:"estoque" binding:"min=0,max=2147483647"`    // INTEGER
	CategoryID int             `json:"categoriaId"`
}
