package timetable

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFromHHMM(t *testing.T) {
	tests := []struct {
		in   int
		want Clock
	}{
		{0, 0},
		{800, 480},
		{845, 525},
		{1305, 785},
		{2400, MinutesPerDay},
	}

	for _, tt := range tests {
		if got := FromHHMM(tt.in); got != tt.want {
			t.Errorf("FromHHMM(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := FromHHMM(tt.in).HHMM(); got != tt.in {
			t.Errorf("FromHHMM(%d).HHMM() = %d, want %d", tt.in, got, tt.in)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Clock
		wantErr bool
	}{
		{"colon", "08:05", 485, false},
		{"short hour", "8:05", 485, false},
		{"digits", "805", 485, false},
		{"padded digits", "0805", 485, false},
		{"midnight", "00:00", 0, false},
		{"end of day", "24:00", MinutesPerDay, false},

		{"minute overflow", "08:60", 0, true},
		{"single minute digit", "08:5", 0, true},
		{"past end of day", "25:00", 0, true},
		{"garbage", "noon", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockString(t *testing.T) {
	if got := FromHHMM(935).String(); got != "09:35" {
		t.Errorf("String() = %q, want %q", got, "09:35")
	}
}

func TestClockClamp(t *testing.T) {
	lo, hi := FromHHMM(800), FromHHMM(1600)
	tests := []struct {
		in, want Clock
	}{
		{FromHHMM(700), lo},
		{FromHHMM(1000), FromHHMM(1000)},
		{FromHHMM(1700), hi},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(lo, hi); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockJSON(t *testing.T) {
	var v struct {
		A Clock `json:"a"`
		B Clock `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a": 800, "b": "09:35"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.A != FromHHMM(800) || v.B != FromHHMM(935) {
		t.Errorf("decoded = %v, %v, want 08:00, 09:35", v.A, v.B)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"a":800,"b":935}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	if err := json.Unmarshal([]byte(`{"a": 875}`), &v); err == nil {
		t.Error("Unmarshal(875) should fail: minute part out of range")
	}
	if err := json.Unmarshal([]byte(`{"a": true}`), &v); err == nil {
		t.Error("Unmarshal(true) should fail")
	}
}

func TestClockYAML(t *testing.T) {
	var v struct {
		A Clock `yaml:"a"`
		B Clock `yaml:"b"`
		C Clock `yaml:"c"`
	}
	in := "a: 800\nb: \"09:35\"\nc: 10:15\n"
	if err := yaml.Unmarshal([]byte(in), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.A != FromHHMM(800) || v.B != FromHHMM(935) || v.C != FromHHMM(1015) {
		t.Errorf("decoded = %v, %v, %v, want 08:00, 09:35, 10:15", v.A, v.B, v.C)
	}
}

func TestClockUnmarshalText(t *testing.T) {
	var c Clock
	if err := c.UnmarshalText([]byte("07:30")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if c != FromHHMM(730) {
		t.Errorf("UnmarshalText = %v, want 07:30", c)
	}
	if err := c.UnmarshalText([]byte("7h30")); err == nil {
		t.Error("UnmarshalText(7h30) should fail")
	}
}
