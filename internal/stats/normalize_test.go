package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0", ClassDeposit},
		{"1", ClassWithdrawal},
		{"2", ClassInterest},
		{"3", ClassOpeningDeposit},
		{"4", ClassOpeningDeposit},
		{"Deposit", ClassDeposit},
		{"deposit", ClassDeposit},
		{" Withdrawal ", ClassWithdrawal},
		{"OPENING DEPOSIT", ClassOpeningDeposit},
		{"InitialDeposit", ClassOpeningDeposit},
		{"Adjustment", "Adjustment"}, // unknown codes pass through
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeType(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "Completed", NormalizeStatus("2"))
	assert.Equal(t, "Completed", NormalizeStatus("COMPLETED"))
	assert.Equal(t, "Cancelled", NormalizeStatus("canceled"))
	assert.Equal(t, "Failed", NormalizeStatus("error"))
	assert.Equal(t, "Pending", NormalizeStatus(" pending "))
	assert.Equal(t, "", NormalizeStatus(""))
	assert.Equal(t, "Weird", NormalizeStatus("WEIRD"))
}
