package models

import "testing"

func TestValidTotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		total float64
		want  bool
	}{
		{"small bottle", 50, true},
		{"large bottle", 100, true},
		{"fractional sum", 20.5 + 29.5, true},
		{"one over", 51, false},
		{"empty", 0, false},
		{"between sizes", 75, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidTotal(tt.total); got != tt.want {
				t.Fatalf("ValidTotal(%v) = %t, want %t", tt.total, got, tt.want)
			}
		})
	}
}

func TestSumAmounts(t *testing.T) {
	t.Parallel()

	details := []CompositionDetail{{Amount: 30}, {Amount: 15.5}, {Amount: 4.5}}
	if got := SumAmounts(details); got != 50 {
		t.Fatalf("SumAmounts() = %v, want 50", got)
	}
	if got := SumAmounts(nil); got != 0 {
		t.Fatalf("SumAmounts(nil) = %v, want 0", got)
	}
}

func TestCustomerFullName(t *testing.T) {
	t.Parallel()

	c := Customer{FirstName: "Maria", LastName: "Schmidt"}
	if got := c.FullName(); got != "Maria Schmidt" {
		t.Fatalf("FullName() = %q, want %q", got, "Maria Schmidt")
	}
	if got := c.Initials(); got != "MS" {
		t.Fatalf("Initials() = %q, want %q", got, "MS")
	}

	c = Customer{FirstName: "Élodie", LastName: ""}
	if got := c.Initials(); got != "É" {
		t.Fatalf("Initials() = %q, want %q", got, "É")
	}
}
