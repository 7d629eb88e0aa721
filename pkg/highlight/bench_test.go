package highlight_test

import (
	"testing"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

func BenchmarkPaintSequential(b *testing.B) {
	for b.Loop() {
		s := highlight.New(nil, true)
		for k := range 10000 {
			s.Paint(10*k, 10*k+5, attrA)
		}
	}
}

func BenchmarkPaintOverwrite(b *testing.B) {
	s := highlight.New(nil, false)
	for k := range 10000 {
		s.Paint(10*k, 10*k+5, attrA)
	}
	for i := 0; b.Loop(); i++ {
		off := (i * 7919) % 99000
		s.Paint(off, off+50, attrB)
		s.Paint(off, off+50, attrA)
	}
}

func BenchmarkQueryWindow(b *testing.B) {
	s := highlight.New(nil, true)
	for k := range 10000 {
		s.Paint(10*k, 10*k+5, attrA)
	}
	for i := 0; b.Loop(); i++ {
		off := (i * 7919) % 99000
		c := s.Query(off, off+2000)
		for c.Next() {
			_ = c.Start()
		}
	}
}
