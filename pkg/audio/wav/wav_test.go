package wav

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
)

func sineClip(freq float64, rate int, seconds float64) *pcm.Clip {
	n := int(float64(rate) * seconds)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 16000)
	}
	return pcm.NewClip(samples, rate)
}

func TestEncodeDecode(t *testing.T) {
	clip := sineClip(440, 16000, 1.5)
	audio, err := Decode(Encode(clip))
	if err != nil {
		t.Fatal(err)
	}
	if audio.Rate != 16000 {
		t.Errorf("rate = %d, want 16000", audio.Rate)
	}
	if audio.Channels != 1 {
		t.Errorf("channels = %d, want 1", audio.Channels)
	}
	if len(audio.Samples) != len(clip.Samples) {
		t.Fatalf("sample count = %d, want %d", len(audio.Samples), len(clip.Samples))
	}
	for i := range clip.Samples {
		if audio.Samples[i] != clip.Samples[i] {
			t.Fatalf("sample[%d] = %d, want %d", i, audio.Samples[i], clip.Samples[i])
		}
	}
}

// encodeStereo writes a stereo WAV for decoder tests.
func encodeStereo(left, right []int16, rate int) []byte {
	interleaved := make([]int16, len(left)*2)
	for i := range left {
		interleaved[i*2] = left[i]
		interleaved[i*2+1] = right[i]
	}
	mono := pcm.NewClip(interleaved, rate)
	buf := Encode(mono)
	// Patch the header to declare two channels.
	binary.LittleEndian.PutUint16(buf[22:24], 2)
	binary.LittleEndian.PutUint32(buf[28:32], uint32(rate*4))
	binary.LittleEndian.PutUint16(buf[32:34], 4)
	return buf
}

func TestDecodeStereoMono(t *testing.T) {
	left := []int16{100, 200, 300}
	right := []int16{300, 400, 500}
	audio, err := Decode(encodeStereo(left, right, 44100))
	if err != nil {
		t.Fatal(err)
	}
	if audio.Channels != 2 {
		t.Fatalf("channels = %d, want 2", audio.Channels)
	}

	mono := audio.Mono()
	want := []int16{200, 300, 400}
	if len(mono.Samples) != len(want) {
		t.Fatalf("mono sample count = %d, want %d", len(mono.Samples), len(want))
	}
	for i := range want {
		if mono.Samples[i] != want[i] {
			t.Errorf("mono[%d] = %d, want %d", i, mono.Samples[i], want[i])
		}
	}
}

func TestDecodeSkipsExtraChunks(t *testing.T) {
	clip := pcm.NewClip([]int16{1, 2, 3, 4}, 16000)
	buf := Encode(clip)

	// Splice a LIST chunk between fmt and data.
	list := make([]byte, 12)
	copy(list[0:4], "LIST")
	binary.LittleEndian.PutUint32(list[4:8], 4)
	copy(list[8:12], "INFO")

	spliced := append(append(append([]byte{}, buf[:36]...), list...), buf[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	audio, err := Decode(spliced)
	if err != nil {
		t.Fatal(err)
	}
	if len(audio.Samples) != 4 {
		t.Errorf("sample count = %d, want 4", len(audio.Samples))
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"short":     []byte("RIFF"),
		"not riff":  make([]byte, 64),
		"truncated": Encode(sineClip(440, 16000, 1))[:50],
	}
	for name, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Errorf("%s: Decode() = nil error, want failure", name)
		}
	}
}

func TestDecodeNotWAV(t *testing.T) {
	if _, err := Decode([]byte("ID3\x03rubbish mp3 data.....")); !errors.Is(err, ErrNotWAV) {
		t.Errorf("err = %v, want ErrNotWAV", err)
	}
}
