package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "1250", want: 125000},
		{input: "1,250.50", want: 125050},
		{input: "0.1", want: 10},
		{input: "19.99", want: 1999},
		{input: "-5", want: -500},
		{input: "abc", wantErr: true},
		{input: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney("$", 0))
	assert.Equal(t, "$12.05", FormatMoney("$", 1205))
	assert.Equal(t, "$1,234,567.89", FormatMoney("$", 123456789))
	assert.Equal(t, "-€5.00", FormatMoney("€", -500))
}

func TestFormatMoneyShort(t *testing.T) {
	assert.Equal(t, "$1,250", FormatMoneyShort("$", 125000))
	assert.Equal(t, "$13", FormatMoneyShort("$", 1250))
	assert.Equal(t, "-$2", FormatMoneyShort("$", -200))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0.0%", FormatRate(0))
	assert.Equal(t, "33.3%", FormatRate(100.0/3))
}
