package arena

import (
	"errors"
	"sync"
	"testing"
	"unsafe"
)

func TestAllocResolve(t *testing.T) {
	tbl := New(4)
	h := tbl.Alloc(24)
	if h.IsZero() {
		t.Fatal("Alloc returned the zero Handle")
	}
	b, err := tbl.Bytes(h)
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if len(b) != 24 {
		t.Errorf("len = %d, want 24", len(b))
	}
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
	if uintptr(unsafe.Pointer(&b[0]))%8 != 0 {
		t.Error("buffer is not 8-byte aligned")
	}
	if tbl.Live() != 1 {
		t.Errorf("Live() = %d, want 1", tbl.Live())
	}
}

func TestZeroHandleDoesNotResolve(t *testing.T) {
	tbl := New(0)
	tbl.Alloc(8)
	if _, err := tbl.Bytes(Handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Bytes(zero) error = %v, want ErrStaleHandle", err)
	}
}

func TestReleaseMakesHandleStale(t *testing.T) {
	tbl := New(4)
	h := tbl.Alloc(16)
	if err := tbl.Release(h); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := tbl.Bytes(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Bytes after Release error = %v, want ErrStaleHandle", err)
	}
	if err := tbl.Release(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("double Release error = %v, want ErrStaleHandle", err)
	}

	// The slot is reused with a new generation.
	h2 := tbl.Alloc(16)
	if h2.Index != h.Index || h2.Gen == h.Gen {
		t.Errorf("reused handle = %+v, old = %+v", h2, h)
	}
	if _, err := tbl.Bytes(h); !errors.Is(err, ErrStaleHandle) {
		t.Error("old handle resolves after slot reuse")
	}
	if tbl.Live() != 1 {
		t.Errorf("Live() = %d, want 1", tbl.Live())
	}
}

func TestReusedBufferIsCleared(t *testing.T) {
	tbl := New(1)
	h := tbl.Alloc(8)
	b, _ := tbl.Bytes(h)
	for i := range b {
		b[i] = 0xFF
	}
	_ = tbl.Release(h)

	h2 := tbl.Alloc(8)
	b2, _ := tbl.Bytes(h2)
	if &b2[0] != &b[0] {
		t.Fatal("expected pooled buffer to be reused")
	}
	for i, v := range b2 {
		if v != 0 {
			t.Fatalf("byte %d = %#x after reuse, want 0", i, v)
		}
	}
}

func TestResizeKeepsPrefix(t *testing.T) {
	tbl := New(2)
	h := tbl.Alloc(4)
	b, _ := tbl.Bytes(h)
	copy(b, []byte{1, 2, 3, 4})

	if err := tbl.Resize(h, 10); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	b, _ = tbl.Bytes(h)
	want := []byte{1, 2, 3, 4, 0, 0, 0, 0, 0, 0}
	if string(b) != string(want) {
		t.Errorf("after grow = %v, want %v", b, want)
	}

	if err := tbl.Resize(h, 2); err != nil {
		t.Fatal(err)
	}
	b, _ = tbl.Bytes(h)
	if string(b) != string([]byte{1, 2}) {
		t.Errorf("after shrink = %v", b)
	}

	if err := tbl.Resize(Handle{Index: 9, Gen: 1}, 4); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Resize(unknown) error = %v", err)
	}
}

func TestZeroLengthBuffer(t *testing.T) {
	tbl := New(2)
	h := tbl.Alloc(0)
	b, err := tbl.Bytes(h)
	if err != nil || b == nil || len(b) != 0 {
		t.Errorf("Bytes() = %v, %v; want empty non-nil slice", b, err)
	}
}

func TestConcurrentAlloc(t *testing.T) {
	tbl := New(8)
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				h := tbl.Alloc(64)
				if _, err := tbl.Bytes(h); err != nil {
					t.Error(err)
					return
				}
				if err := tbl.Release(h); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if tbl.Live() != 0 {
		t.Errorf("Live() = %d, want 0", tbl.Live())
	}
}
