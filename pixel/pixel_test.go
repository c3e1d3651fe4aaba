package pixel

import "testing"

func TestLumaKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"pure red", 255, 0, 0, 76},
		{"pure green", 0, 255, 0, 150},
		{"pure blue", 0, 0, 255, 29},
		{"mid grey", 128, 128, 128, 128},
	}
	for _, tc := range tests {
		if got := Luma(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("%s: Luma(%d,%d,%d) = %d, want %d", tc.name, tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestThresholdIsBinary(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				v := Threshold(Luma(uint8(r), uint8(g), uint8(b)))
				if v != 0 && v != 255 {
					t.Fatalf("Threshold(Luma(%d,%d,%d)) = %d, want 0 or 255", r, g, b, v)
				}
			}
		}
	}
}

func TestThresholdBoundary(t *testing.T) {
	if got := Threshold(127); got != 0 {
		t.Errorf("Threshold(127) = %d, want 0", got)
	}
	if got := Threshold(128); got != 255 {
		t.Errorf("Threshold(128) = %d, want 255", got)
	}
}

func TestPack565PureColours(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint16
	}{
		{"red", 255, 0, 0, 0xF800},
		{"green", 0, 255, 0, 0x07E0},
		{"blue", 0, 0, 255, 0x001F},
		{"white", 255, 255, 255, 0xFFFF},
		{"black", 0, 0, 0, 0x0000},
	}
	for _, tc := range tests {
		if got := Pack565(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("%s: Pack565 = %#04x, want %#04x", tc.name, got, tc.want)
		}
	}
}

func TestPack565RoundTripWithinQuantization(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				ur, ug, ub := Unpack565(Pack565(uint8(r), uint8(g), uint8(b)))
				if int(ur) > r || r >= int(ur)+8 {
					t.Fatalf("red %d unpacked to %d", r, ur)
				}
				if int(ug) > g || g >= int(ug)+4 {
					t.Fatalf("green %d unpacked to %d", g, ug)
				}
				if int(ub) > b || b >= int(ub)+8 {
					t.Fatalf("blue %d unpacked to %d", b, ub)
				}
			}
		}
	}
}
