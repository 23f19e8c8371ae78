package noise

import "testing"

func BenchmarkGenerate128(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Generate(Shape{W: 128, H: 128}, 34315, HeightContinent)
	}
}
