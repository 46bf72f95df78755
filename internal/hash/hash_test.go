package hash_test

import (
	"testing"

	"github.com/DMarby/visit-badge/internal/hash"
)

func TestSum(t *testing.T) {
	tests := []struct {
		Page     string
		Key      string
		Expected string
	}{
		{"foo", "bar", "ff32a30c3af5012ea395827a3e99a13073c3a8d8410a708568ff7e6eb85968fccfebaea039bc21411e9d43fdb9a851b529b9960ffea8679199781b8f45ca85e2"},
		{"bar", "foo", "b491a039c51aab2e18c4a7f38401981a078730408bd939df651668cecaf10c1145c55688b28b9f96fd9b966daf66a945131aa59c3fed7f321f3fdfc3c47c5b9c"},
	}

	for _, test := range tests {
		h := &hash.Hasher{Key: []byte(test.Key)}

		sum, err := h.Sum(test.Page)
		if err != nil {
			t.Errorf("%s: %s", test.Page, err)
			continue
		}

		if sum != test.Expected {
			t.Errorf("%s: wrong hash %s", test.Page, sum)
		}
	}
}

func TestSumDeterministic(t *testing.T) {
	h := &hash.Hasher{Key: []byte("pytest")}

	first, err := h.Sum("user_1234")
	if err != nil {
		t.Fatal(err)
	}

	second, err := h.Sum("user_1234")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("hash is not deterministic")
	}

	if len(first) != 128 {
		t.Errorf("wrong hash length %d", len(first))
	}

	other, err := (&hash.Hasher{Key: []byte("other")}).Sum("user_1234")
	if err != nil {
		t.Fatal(err)
	}

	if other == first {
		t.Error("hash does not depend on the key")
	}
}
