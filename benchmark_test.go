package glob

import (
	"io"
	"testing"
)

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Compile("some/(**)/only-(*).txt")
	}
}

func BenchmarkMatches(b *testing.B) {
	pat := MustCompile("some/**/needle.txt")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = pat.Matches("some/one/two/three/needle.txt")
	}
}

func BenchmarkMatches_Backtracking(b *testing.B) {
	pat := MustCompile("a*a*a*a*a*a*a*a*a")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = pat.Matches("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	}
}

func BenchmarkCaptures(b *testing.B) {
	pat := MustCompile("some/(**)/only-(*).txt")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = pat.Captures("some/one/two/only-file1.txt")
	}
}

func BenchmarkSubstitute(b *testing.B) {
	pat := MustCompile("images/(*)/(*).jpg")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = pat.Substitute("pets", "cat")
	}
}

func BenchmarkGlob_MemoryTree(b *testing.B) {
	fsys := NewMemoryFS()
	bfs := fsys.Unwrap()
	for _, path := range []string{
		"images/pets/cat.jpg",
		"images/pets/dog.jpg",
		"images/wild/fox.jpg",
		"images/wild/wolf.jpg",
	} {
		f, err := bfs.Create(path)
		if err != nil {
			b.Fatal(err)
		}
		if err := f.Close(); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		entries, err := Glob("images/(*)/(*).jpg", WithFilesystem(fsys))
		if err != nil {
			b.Fatal(err)
		}
		for {
			_, err := entries.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
