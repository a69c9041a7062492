package actions

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type balanceParams struct {
	AccountType string `validate:"required,oneof=checking savings credit_card"`
}

type transactionsParams struct {
	AccountType string `validate:"required,oneof=checking savings credit_card"`
	Limit       int    `validate:"gte=0,lte=20"`
}

type transferParams struct {
	FromAccount string `validate:"required,oneof=checking savings credit_card"`
	ToAccount   string `validate:"required,oneof=checking savings credit_card"`
}

type searchParams struct {
	AccountType string `validate:"required,oneof=checking savings credit_card"`
	Keyword     string
	Category    string
	MinAmount   *float64 `validate:"omitempty,gte=0"`
}

func stringParam(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func floatParamPtr(params map[string]any, key string) *float64 {
	switch v := params[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func decimalParam(params map[string]any, key string) decimal.Decimal {
	switch v := params[key].(type) {
	case decimal.Decimal:
		return v
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	}
	return decimal.Zero
}
