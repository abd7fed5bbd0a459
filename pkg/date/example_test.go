package date_test

import (
	"fmt"

	"github.com/matzehuels/fanchart/pkg/date"
)

func ExampleNormalize() {
	for _, raw := range []string{"15 JAN 1850", "ABT 1850", "BEF 1850", "@#DFRENCH R@ 12 VEND 3"} {
		d := date.Normalize(raw, date.Options{})
		year, ok := d.AnchorYear()
		fmt.Println(d.Display, year, ok)
	}
	// Output:
	// 15/01/1850 1850 true
	// ~1850 1850 true
	// <1850 0 false
	// 12/01/III 1795 true
}

func ExampleNormalize_invalid() {
	d := date.Normalize("vers 1850", date.Options{ShowInvalidDates: true})
	fmt.Println(d.IsInvalid(), d.Display)
	// Output: true vers 1850
}
