package series_test

import (
	"testing"

	"github.com/ardanlabs/logreturns/foundation/series"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestDefault(t *testing.T) {
	t.Log("Given the need to use the built in price series.")
	{
		prices := series.Default()

		exp := []float64{100, 105, 102, 108}
		if len(prices) != len(exp) {
			t.Fatalf("\t%s\tShould get back %d prices, got %d.", failed, len(exp), len(prices))
		}
		for i := range exp {
			if prices[i] != exp[i] {
				t.Fatalf("\t%s\tShould get back price %v at index %d, got %v.", failed, exp[i], i, prices[i])
			}
		}
		t.Logf("\t%s\tShould get back the default prices.", success)

		prices[0] = -1
		if series.Default()[0] != 100 {
			t.Fatalf("\t%s\tShould not be able to change the default prices.", failed)
		}
		t.Logf("\t%s\tShould not be able to change the default prices.", success)
	}
}

func TestLoad(t *testing.T) {
	t.Log("Given the need to read prices from a file.")
	{
		t.Logf("\tTest 0:\tWhen handling a valid file.")
		{
			prices, err := series.Load("testdata/prices.yaml")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the file : %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the file.", success)

			exp := []float64{100, 105, 102, 108, 110.5}
			if len(prices) != len(exp) {
				t.Fatalf("\t%s\tTest 0:\tShould get back %d prices, got %d.", failed, len(exp), len(prices))
			}
			for i := range exp {
				if prices[i] != exp[i] {
					t.Fatalf("\t%s\tTest 0:\tShould get back price %v at index %d, got %v.", failed, exp[i], i, prices[i])
				}
			}
			t.Logf("\t%s\tTest 0:\tShould get back the prices in order.", success)
		}

		t.Logf("\tTest 1:\tWhen handling a malformed file.")
		{
			if _, err := series.Load("testdata/bad.yaml"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not be able to load the file.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not be able to load the file.", success)
		}

		t.Logf("\tTest 2:\tWhen handling a missing file.")
		{
			if _, err := series.Load("testdata/missing.yaml"); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould not be able to load the file.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould not be able to load the file.", success)
		}
	}
}
