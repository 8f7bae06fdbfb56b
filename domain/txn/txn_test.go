package txn

import "testing"

func TestValidType(t *testing.T) {
	if !ValidType(Auth) {
		t.Error("Auth should be valid")
	}
	if !ValidType(Purchase) {
		t.Error("Purchase should be valid")
	}
	if ValidType(Type("Refund")) {
		t.Error("Refund should not be valid")
	}
	if ValidType(Type("")) {
		t.Error("empty type should not be valid")
	}
}

func TestSupportedCurrency(t *testing.T) {
	for _, code := range []string{"NZD", "USD", "EUR", "JPY", "WST"} {
		if !SupportedCurrency(code) {
			t.Errorf("SupportedCurrency(%s) = false, want true", code)
		}
	}
	for _, code := range []string{"XXX", "nzd", "NZ", ""} {
		if SupportedCurrency(code) {
			t.Errorf("SupportedCurrency(%s) = true, want false", code)
		}
	}
}

func TestCurrencies(t *testing.T) {
	codes := Currencies()
	if len(codes) != 23 {
		t.Errorf("len(Currencies()) = %d, want 23", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("Currencies() not sorted at %d: %s >= %s", i, codes[i-1], codes[i])
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1.00"},
		{"19.95", "19.95"},
		{"19.955", "19.95"},
		{"0.5", "0.50"},
		{"1000", "1000.00"},
		{"1.2", "1.20"},
	}
	for _, c := range cases {
		got, err := FormatAmount(c.in)
		if err != nil {
			t.Errorf("FormatAmount(%s) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("FormatAmount(%s) = %s, want %s", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "abc", "1,00", "12.3.4"} {
		if _, err := FormatAmount(bad); err == nil {
			t.Errorf("FormatAmount(%s) expected error", bad)
		}
	}
}
