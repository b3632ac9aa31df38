package audio

import (
	"errors"
	"io"
	"testing"
)

type fakeDecoder struct{ name string }

func (d *fakeDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("not implemented")
}

func TestRegistryLookupByExtension(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	wav := &fakeDecoder{name: "wav"}
	ogg := &fakeDecoder{name: "ogg"}
	reg.Register(".wav", wav)
	reg.Register("ogg", ogg) // leading dot optional

	tests := []struct {
		file string
		want Decoder
	}{
		{"click.wav", wav},
		{"music/theme.WAV", wav},
		{"theme.ogg", ogg},
		{"dir.with.dots/take.2.ogg", ogg},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := reg.Lookup(tt.file)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.file, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) returned wrong decoder", tt.file)
			}
		})
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(".wav", &fakeDecoder{})

	for _, file := range []string{"click.flac", "noextension", ""} {
		if _, err := reg.Lookup(file); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Lookup(%q) err = %v, want ErrUnsupportedFormat", file, err)
		}
	}
}

func TestRegistryOverwrite(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first := &fakeDecoder{name: "first"}
	second := &fakeDecoder{name: "second"}
	reg.Register(".wav", first)
	reg.Register(".wav", second)

	got, err := reg.Lookup("a.wav")
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Error("Lookup did not return the overwritten decoder")
	}
}
