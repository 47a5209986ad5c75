package models

import (
	"testing"
	"time"
)

func TestPaymentWindowOpen(t *testing.T) {
	now := time.Now()
	anchor := now.Add(-time.Hour)

	cases := []struct {
		name  string
		order Order
		at    time.Time
		want  bool
	}{
		{
			name:  "未审批",
			order: Order{ApprovalWindowSeconds: 3600},
			at:    now,
			want:  false,
		},
		{
			name:  "缺少审批时间",
			order: Order{IsApproved: true, ApprovalWindowSeconds: 3600},
			at:    now,
			want:  false,
		},
		{
			name:  "窗口时长为零",
			order: Order{IsApproved: true, ApprovedAt: &anchor},
			at:    now,
			want:  false,
		},
		{
			name:  "窗口内",
			order: Order{IsApproved: true, ApprovedAt: &anchor, ApprovalWindowSeconds: 7200},
			at:    now,
			want:  true,
		},
		{
			name:  "恰在截止时刻",
			order: Order{IsApproved: true, ApprovedAt: &anchor, ApprovalWindowSeconds: 3600},
			at:    anchor.Add(time.Hour),
			want:  true,
		},
		{
			name:  "窗口已过",
			order: Order{IsApproved: true, ApprovedAt: &anchor, ApprovalWindowSeconds: 1800},
			at:    now,
			want:  false,
		},
	}
	for _, tc := range cases {
		if got := tc.order.PaymentWindowOpen(tc.at); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestUintListContains(t *testing.T) {
	list := UintList{1, 5, 9}
	if !list.Contains(5) {
		t.Fatalf("expected list to contain 5")
	}
	if list.Contains(2) {
		t.Fatalf("expected list to not contain 2")
	}
	if (UintList{}).Contains(1) {
		t.Fatalf("empty list must not contain anything")
	}
}
