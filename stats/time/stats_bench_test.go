package time

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
		}

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))
			for range b.N {
				Calculate(x)
			}
		})
	}
}
