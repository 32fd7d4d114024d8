package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/dhawalhost/jtok"
	"github.com/tidwall/gjson"
	"github.com/valyala/fastjson"
)

var (
	smallJSON  = []byte(`{"device":{"id":"dev-0001","fw":"0.103.1","rssi":-52},"ok":true}`)
	mediumJSON []byte
	largeJSON  []byte
	stringJSON []byte
	deepJSON   []byte

	// Pools sized once so the steady-state benchmarks measure scanning, not
	// allocation.
	smallPool  []jtok.Token
	mediumPool []jtok.Token
	largePool  []jtok.Token
)

func init() {
	f := NewFuzzer(42, DefaultSchema())
	mediumJSON = f.Generate(25)
	largeJSON = f.Generate(1000)
	stringJSON = NewFuzzer(43, StringHeavySchema()).Generate(200)
	deepJSON = f.GenerateDeep(128)

	smallPool = mustPool(smallJSON)
	mediumPool = mustPool(mediumJSON)
	largePool = mustPool(largeJSON)
}

func mustPool(data []byte) []jtok.Token {
	n, err := jtok.Count(data, jtok.Options{Strict: true})
	if err != nil {
		panic(err)
	}
	return make([]jtok.Token, n)
}

func benchParse(b *testing.B, data []byte, pool []jtok.Token) {
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	p := jtok.NewParser(jtok.Options{Strict: true})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Reset()
		if _, err := p.Parse(data, pool); err != nil {
			b.Fatal(err)
		}
	}
}

//------------------------------------------------------------------------------
// TOKENIZE WITH A REUSED POOL (the zero-allocation path)
//------------------------------------------------------------------------------

func BenchmarkParse_Small_JTOK(b *testing.B)  { benchParse(b, smallJSON, smallPool) }
func BenchmarkParse_Medium_JTOK(b *testing.B) { benchParse(b, mediumJSON, mediumPool) }
func BenchmarkParse_Large_JTOK(b *testing.B)  { benchParse(b, largeJSON, largePool) }

func BenchmarkParse_StringHeavy_JTOK(b *testing.B) {
	benchParse(b, stringJSON, mustPool(stringJSON))
}

func BenchmarkParse_Deep_JTOK(b *testing.B) {
	benchParse(b, deepJSON, mustPool(deepJSON))
}

// BenchmarkParse_Large_DryRun measures counting without a pool.
func BenchmarkParse_Large_DryRun(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeJSON)))
	p := jtok.NewParser(jtok.Options{Strict: true})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Reset()
		if _, err := p.Parse(largeJSON, nil); err != nil {
			b.Fatal(err)
		}
	}
}

//------------------------------------------------------------------------------
// SCAN BASELINES FROM OTHER LIBRARIES
//------------------------------------------------------------------------------

func BenchmarkParse_Large_STDJSON(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeJSON)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !json.Valid(largeJSON) {
			b.Fatal("invalid")
		}
	}
}

func BenchmarkParse_Large_GJSON(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeJSON)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !gjson.ValidBytes(largeJSON) {
			b.Fatal("invalid")
		}
	}
}

func BenchmarkParse_Large_FASTJSON(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeJSON)))
	var p fastjson.Parser
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.ParseBytes(largeJSON); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Large_JSONPARSER(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeJSON)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := jsonparser.ObjectEach(largeJSON, func(key, value []byte, vt jsonparser.ValueType, off int) error {
			return nil
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

//------------------------------------------------------------------------------
// FIRST-LEVEL KEY LOOKUP
//------------------------------------------------------------------------------

func BenchmarkLookup_Small_JTOK(b *testing.B) {
	b.ReportAllocs()
	tokens, err := jtok.Tokenize(smallJSON, jtok.Options{Strict: true})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := jtok.Lookup(smallJSON, tokens, "ok"); !ok {
			b.Fatal("not found")
		}
	}
}

func BenchmarkLookup_Small_GJSON(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !gjson.GetBytes(smallJSON, "ok").Exists() {
			b.Fatal("not found")
		}
	}
}

func BenchmarkLookup_Small_JSONPARSER(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := jsonparser.Get(smallJSON, "ok"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGet_Small_JTOK includes tokenization, the worst-case single-shot
// path.
func BenchmarkGet_Small_JTOK(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jtok.Get(smallJSON, "ok"); err != nil {
			b.Fatal(err)
		}
	}
}
