package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWithdrawalPolicyMethods(t *testing.T) {
	tests := []struct {
		policy WithdrawalPolicy
		want   WithdrawalMethod
	}{
		{NominalWithdrawal{StaticAmount: dec("40000")}, MethodNominal},
		{InflationAdjustedWithdrawal{StaticAmount: dec("40000")}, MethodInflationAdjusted},
		{PercentPortfolioWithdrawal{Percentage: dec("0.04")}, MethodPercentPortfolio},
		{ClampedPercentWithdrawal{Percentage: dec("0.04"), Floor: dec("30000"), Ceiling: dec("60000")}, MethodPercentPortfolioClamped},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.policy.Method())
	}
	assert.Len(t, WithdrawalMethods(), 4)
}

func TestNewPortfolioOptions(t *testing.T) {
	opts, err := NewPortfolioOptions(30, dec("1000000"), dec("0.0025"), dec("0.9"), InflationAdjustedWithdrawal{StaticAmount: dec("40000")})
	require.NoError(t, err)
	assert.Equal(t, 30, opts.SimulationYearsLength)
	assert.Equal(t, "0.0025", opts.InvestmentExpenseRatio.String())
	assert.Equal(t, MethodInflationAdjusted, opts.Withdrawal.Method())
}

func TestPortfolioOptionsValidate(t *testing.T) {
	valid := PortfolioOptions{
		SimulationYearsLength:  30,
		StartBalance:           dec("1000000"),
		InvestmentExpenseRatio: dec("0.0025"),
		EquitiesRatio:          dec("0.9"),
		Withdrawal:             NominalWithdrawal{StaticAmount: dec("40000")},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(o *PortfolioOptions)
	}{
		{"zero years", func(o *PortfolioOptions) { o.SimulationYearsLength = 0 }},
		{"negative balance", func(o *PortfolioOptions) { o.StartBalance = dec("-0.01") }},
		{"expense ratio above one", func(o *PortfolioOptions) { o.InvestmentExpenseRatio = dec("1.5") }},
		{"negative equities ratio", func(o *PortfolioOptions) { o.EquitiesRatio = dec("-0.1") }},
		{"missing withdrawal", func(o *PortfolioOptions) { o.Withdrawal = nil }},
		{"floor above ceiling", func(o *PortfolioOptions) {
			o.Withdrawal = ClampedPercentWithdrawal{Percentage: dec("0.04"), Floor: dec("60000"), Ceiling: dec("30000")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			assert.ErrorIs(t, o.Validate(), ErrInvalidOptions)
		})
	}
}

func TestPortfolioOptionsBoundaryRatios(t *testing.T) {
	for _, r := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(1)} {
		_, err := NewPortfolioOptions(1, decimal.Zero, r, r, NominalWithdrawal{})
		assert.NoError(t, err)
	}
	_, err := NewPortfolioOptions(1, decimal.Zero, decimal.Zero, decimal.Zero,
		ClampedPercentWithdrawal{Percentage: dec("0.04"), Floor: dec("30000"), Ceiling: dec("30000")})
	assert.NoError(t, err)
}
