package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus_AllCombinations(t *testing.T) {
	cases := []struct {
		name            string
		prepaymentPaid  bool
		postpaymentPaid bool
		hasDeliveryDate bool
		want            PaymentStatus
	}{
		{"nothing paid, no delivery", false, false, false, PaymentAwaitingPrepayment},
		{"nothing paid, delivery set", false, false, true, PaymentAwaitingPrepayment},
		{"prepayment only, no delivery", true, false, false, PaymentPrepaymentMade},
		{"prepayment only, delivery set", true, false, true, PaymentAwaitingPayment},
		{"postpayment only, no delivery", false, true, false, PaymentDone},
		{"postpayment only, delivery set", false, true, true, PaymentDone},
		{"both paid, no delivery", true, true, false, PaymentDone},
		{"both paid, delivery set", true, true, true, PaymentDone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePaymentStatus(tc.prepaymentPaid, tc.postpaymentPaid, tc.hasDeliveryDate)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaymentStatusLabels(t *testing.T) {
	assert.Equal(t, "Ожидает предоплаты", PaymentAwaitingPrepayment.Label())
	assert.Equal(t, "Внесена предоплата", PaymentPrepaymentMade.Label())
	assert.Equal(t, "Ожидает оплаты", PaymentAwaitingPayment.Label())
	assert.Equal(t, "Оплата произведена", PaymentDone.Label())
}

func TestEmployeeAccessLevel(t *testing.T) {
	lvl := 2
	e := Employee{Position: JobTitle{AccessLvl: &lvl}}
	assert.Equal(t, 2, e.AccessLevel())

	noLvl := Employee{Position: JobTitle{}}
	assert.Equal(t, 0, noLvl.AccessLevel())
}

func TestOrderExecutors_SkipsEmptySlots(t *testing.T) {
	e1 := &Employee{ID: 5}
	e3 := &Employee{ID: 7}
	o := Order{Executor1: e1, Executor3: e3}

	got := o.Executors()
	assert.Len(t, got, 2)
	assert.Equal(t, uint(5), got[0].ID)
	assert.Equal(t, uint(7), got[1].ID)
}
