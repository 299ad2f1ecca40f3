package structpack

import (
	"testing"
)

func BenchmarkPackSmall(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Pack("i", 1000)
	}
}

func BenchmarkPackMixed(b *testing.B) {
	values := []any{int8(-1), uint8(200), true, int16(12), uint16(300), int32(-7), uint32(14),
		int64(1) << 40, uint64(1) << 60, float32(12.13), 165.63}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Pack("bB?hHiIqQfd", values...)
	}
}

func BenchmarkUnpackMixed(b *testing.B) {
	data, err := Pack("bB?hHiIqQfd", -1, 200, true, 12, 300, -7, 14, 1<<40, 1<<60, float32(12.13), 165.63)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_, _ = Unpack("bB?hHiIqQfd", data)
	}
}

func BenchmarkPackStruct(b *testing.B) {
	h := udpHeader{SrcPort: 53, DstPort: 40000, Length: 28, Checksum: 0xBEEF}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = PackStruct(h)
	}
}

func BenchmarkUnpackStruct(b *testing.B) {
	data, _ := PackStruct(udpHeader{SrcPort: 53, DstPort: 40000, Length: 28, Checksum: 0xBEEF})
	res := &udpHeader{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = UnpackStruct(data, res)
	}
}
