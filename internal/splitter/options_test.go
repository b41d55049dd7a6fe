package splitter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/vnykmshr/partsplit/internal/checksum"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.ChunkSize != 2048 {
		t.Errorf("ChunkSize = %d, want 2048", opts.ChunkSize)
	}
	if !opts.Verify {
		t.Error("Verify = false, want true")
	}
	if opts.Engine != checksum.EngineBitwise {
		t.Errorf("Engine = %v, want bitwise", opts.Engine)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr error
	}{
		{"valid", func(*Options) {}, nil},
		{"zero chunk", func(o *Options) { o.ChunkSize = 0 }, ErrInvalidChunkSize},
		{"negative chunk", func(o *Options) { o.ChunkSize = -5 }, ErrInvalidChunkSize},
		{"unknown engine", func(o *Options) { o.Engine = checksum.Engine(42) }, ErrConfig},
		{"negative free space", func(o *Options) { o.MinFreeDiskSpace = -1 }, ErrConfig},
		{"table engine", func(o *Options) { o.Engine = checksum.EngineTable }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(opts)

			err := opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "unknown"},
		{errors.New("boom"), "unknown"},
		{fmt.Errorf("%w: got 0", ErrInvalidChunkSize), "config"},
		{fmt.Errorf("%w: source: %w", ErrOpen, os.ErrNotExist), "open"},
		{fmt.Errorf("%w: x", ErrRead), "read"},
		{fmt.Errorf("%w: x", ErrWrite), "write"},
		{fmt.Errorf("%w: x", ErrInsufficientSpace), "space"},
		{&MismatchError{Index: 1}, "mismatch"},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestMismatchError(t *testing.T) {
	err := &MismatchError{
		Index:         7,
		PartPath:      "/out/f.07",
		PartCRC:       0xCBF43926,
		ReferencePath: "/ref/f.07",
		ReferenceCRC:  0xE8B7BE43,
	}

	msg := err.Error()
	for _, want := range []string{"part 7", "/out/f.07 crc = 0xCBF43926", "/ref/f.07 crc = 0xE8B7BE43"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	if !errors.Is(err, ErrMismatch) {
		t.Error("errors.Is(err, ErrMismatch) = false")
	}
	if errors.Is(err, ErrOpen) {
		t.Error("errors.Is(err, ErrOpen) = true")
	}
}
