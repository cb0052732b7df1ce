// Package payrollsvc - Test công thức tính lương thực nhận.
package payrollsvc

import "testing"

func TestComputeNetPay(t *testing.T) {
	cases := []struct {
		base, bonus, deduction int64
		want                   int64
	}{
		{10_000_000, 0, 0, 10_000_000},
		{10_000_000, 2_000_000, 500_000, 11_500_000},
		{0, 0, 0, 0},
		{5_000_000, 0, 6_000_000, -1_000_000}, // khấu trừ lớn hơn lương vẫn tính thẳng, không chặn âm
	}
	for _, c := range cases {
		if got := ComputeNetPay(c.base, c.bonus, c.deduction); got != c.want {
			t.Errorf("ComputeNetPay(%d, %d, %d) = %d, muốn %d", c.base, c.bonus, c.deduction, got, c.want)
		}
	}
}
