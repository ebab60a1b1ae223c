package deviceatlas_test

import (
	"testing"

	"github.com/dmitrymomot/deviceatlas/pkg/deviceatlas"
)

var benchDevice deviceatlas.Device

func BenchmarkDevice_N95(b *testing.B) {
	atlas := loadTestAtlas(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDevice = atlas.Device(n95UA)
	}
}

func BenchmarkDevice_NoMatch(b *testing.B) {
	atlas := loadTestAtlas(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDevice = atlas.Device(curlUA)
	}
}

func BenchmarkProperties_Model(b *testing.B) {
	atlas := loadTestAtlas(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDevice, _ = atlas.Properties(iPhoneUA, "model")
	}
}

func BenchmarkLoadFile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := deviceatlas.LoadFile("testdata/atlas.json"); err != nil {
			b.Fatal(err)
		}
	}
}
