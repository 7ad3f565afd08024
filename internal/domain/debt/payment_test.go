package debt

import (
	"math"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name string
		debt Debt
		want float64
	}{
		{
			name: "installment schedule divides balance evenly",
			debt: Debt{CurrentBalance: 1200, InstallmentMonths: iptr(6)},
			want: 200,
		},
		{
			name: "monthly minimum overrides a smaller installment share",
			debt: Debt{CurrentBalance: 1200, InstallmentMonths: iptr(6), MonthlyMinimum: fptr(250)},
			want: 250,
		},
		{
			name: "monthly minimum below installment share is ignored",
			debt: Debt{CurrentBalance: 1200, InstallmentMonths: iptr(6), MonthlyMinimum: fptr(150)},
			want: 200,
		},
		{
			name: "installment with zero balance falls through to minimum",
			debt: Debt{CurrentBalance: 0, InstallmentMonths: iptr(6), MonthlyMinimum: fptr(50)},
			want: 50,
		},
		{
			name: "monthly minimum without schedule",
			debt: Debt{CurrentBalance: 800, MonthlyMinimum: fptr(75)},
			want: 75,
		},
		{
			name: "zero minimum falls through to amount",
			debt: Debt{CurrentBalance: 800, MonthlyMinimum: fptr(0), Amount: 120},
			want: 120,
		},
		{
			name: "amount fallback when nothing else configured",
			debt: Debt{CurrentBalance: 500, Amount: 60},
			want: 60,
		},
		{
			name: "nothing configured yields zero",
			debt: Debt{CurrentBalance: 500},
			want: 0,
		},
		{
			name: "division is not rounded",
			debt: Debt{CurrentBalance: 1000, InstallmentMonths: iptr(3)},
			want: 1000.0 / 3.0,
		},
		{
			name: "suggestion may exceed remaining balance",
			debt: Debt{CurrentBalance: 40, MonthlyMinimum: fptr(100)},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(&tt.debt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MonthlyPayment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalMonthlyPayments(t *testing.T) {
	tests := []struct {
		name  string
		debts []*Debt
		want  float64
	}{
		{
			name: "sums active debts",
			debts: []*Debt{
				{CurrentBalance: 1200, InstallmentMonths: iptr(6)},
				{CurrentBalance: 800, MonthlyMinimum: fptr(75)},
				{CurrentBalance: 500, Amount: 60},
			},
			want: 335,
		},
		{
			name: "paid debts are skipped even with a minimum set",
			debts: []*Debt{
				{CurrentBalance: 300, MonthlyMinimum: fptr(100), Paid: true},
				{CurrentBalance: 500, Amount: 60},
			},
			want: 60,
		},
		{
			name: "zero balance debts are skipped",
			debts: []*Debt{
				{CurrentBalance: 0, MonthlyMinimum: fptr(100)},
				{CurrentBalance: 500, Amount: 60},
			},
			want: 60,
		},
		{
			name:  "empty list yields zero",
			debts: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalMonthlyPayments(tt.debts)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TotalMonthlyPayments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalMonthlyPaymentsOrderIndependent(t *testing.T) {
	debts := []*Debt{
		{CurrentBalance: 1200, InstallmentMonths: iptr(6)},
		{CurrentBalance: 800, MonthlyMinimum: fptr(75)},
		{CurrentBalance: 300, MonthlyMinimum: fptr(100), Paid: true},
		{CurrentBalance: 500, Amount: 60},
	}

	reversed := make([]*Debt, len(debts))
	for i, d := range debts {
		reversed[len(debts)-1-i] = d
	}

	want := TotalMonthlyPayments(debts)
	if got := TotalMonthlyPayments(reversed); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalMonthlyPayments(reversed) = %v, want %v", got, want)
	}
}

func TestPercentPaid(t *testing.T) {
	tests := []struct {
		name string
		debt Debt
		want float64
	}{
		{name: "half paid", debt: Debt{InitialBalance: 200, CurrentBalance: 100}, want: 50},
		{name: "fully paid", debt: Debt{InitialBalance: 200, CurrentBalance: 0}, want: 100},
		{name: "untouched", debt: Debt{InitialBalance: 200, CurrentBalance: 200}, want: 0},
		{name: "zero initial balance", debt: Debt{InitialBalance: 0, CurrentBalance: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentPaid(&tt.debt); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PercentPaid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name string
		debt Debt
		want bool
	}{
		{name: "manual debt", debt: Debt{CurrentBalance: 500}, want: true},
		{name: "expense debt with balance", debt: Debt{SourceType: SourceTypeExpense, CurrentBalance: 500}, want: false},
		{name: "settled expense debt", debt: Debt{SourceType: SourceTypeExpense, CurrentBalance: 0}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDelete(&tt.debt); got != tt.want {
				t.Errorf("CanDelete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysUntilPayday(t *testing.T) {
	tests := []struct {
		name    string
		payDate int
		now     time.Time
		want    int
	}{
		{
			name:    "payday later this month",
			payDate: 27,
			now:     time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC),
			want:    7,
		},
		{
			name:    "payday today",
			payDate: 27,
			now:     time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC),
			want:    0,
		},
		{
			name:    "payday already passed wraps into next month",
			payDate: 1,
			now:     time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilPayday(tt.payDate, tt.now); got != tt.want {
				t.Errorf("DaysUntilPayday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNearPayday(t *testing.T) {
	withAmount := Debt{Amount: 120, CurrentBalance: 500}
	noAmount := Debt{CurrentBalance: 500}

	if !IsNearPayday(&withAmount, 3) {
		t.Error("expected debt with amount to be near payday at 3 days out")
	}
	if IsNearPayday(&withAmount, 4) {
		t.Error("expected 4 days out to be outside the reminder window")
	}
	if IsNearPayday(&noAmount, 0) {
		t.Error("expected debt without a configured amount to be excluded")
	}
}
