package precision

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestUnit_ZeroValue(t *testing.T) {
	var u Unit
	if u != Centimeter {
		t.Errorf("Unit(0) = %v, want %v", u, Centimeter)
	}
}

func TestParseUnit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			code string
			want Unit
		}{
			{"cm", Centimeter},
			{"Centimeter", Centimeter},
			{"nm", Nanometer},
			{"um", Micrometer},
			{"mm", Millimeter},
			{"m", Meter},
			{"meter", Meter},
			{"km", Kilometer},
			{"au", AstronomicalUnit},
			{"Astronomical Unit", AstronomicalUnit},
			{"astronomical unit", AstronomicalUnit},
			{"ly", LightYear},
			{"Light-Year", LightYear},
			{"light-year", LightYear},
			{"pc", Parsec},
		}
		for _, tt := range tests {
			got, err := ParseUnit(tt.code)
			if err != nil {
				t.Errorf("ParseUnit(%q) failed: %v", tt.code, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %v, want %v", tt.code, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"", "LY", "CM", "feet", "light year", "0",
		}
		for _, tt := range tests {
			_, err := ParseUnit(tt)
			if err == nil {
				t.Errorf("ParseUnit(%q) did not fail", tt)
			}
		}
	})
}

func TestMustParseUnit(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParseUnit(\"ft\") did not panic")
			}
		}()
		MustParseUnit("ft")
	})
}

func TestUnit_Lookups(t *testing.T) {
	tests := []struct {
		unit               Unit
		code, name, factor string
	}{
		{Centimeter, "cm", "Centimeter", "1"},
		{Nanometer, "nm", "Nanometer", "0.0000001"},
		{Meter, "m", "Meter", "100"},
		{AstronomicalUnit, "au", "Astronomical Unit", "14959787070000"},
		{LightYear, "ly", "Light-Year", "946073047258080000"},
	}
	for _, tt := range tests {
		if got := tt.unit.Code(); got != tt.code {
			t.Errorf("%v.Code() = %v, want %v", tt.unit, got, tt.code)
		}
		if got := tt.unit.Name(); got != tt.name {
			t.Errorf("%v.Name() = %v, want %v", tt.unit, got, tt.name)
		}
		if got := tt.unit.Factor(); got != tt.factor {
			t.Errorf("%v.Factor() = %v, want %v", tt.unit, got, tt.factor)
		}
	}
}

func TestUnit_Lookups_Complete(t *testing.T) {
	for u := Unit(0); int(u) < len(codeLookup); u++ {
		if unitLookup[u.Code()] != u {
			t.Errorf("unitLookup[%q] = %v, want %v", u.Code(), unitLookup[u.Code()], u)
		}
		if unitLookup[u.Name()] != u {
			t.Errorf("unitLookup[%q] = %v, want %v", u.Name(), unitLookup[u.Name()], u)
		}
		if unitFactors[u].Sign() <= 0 {
			t.Errorf("unitFactors[%v] = %v, want positive", u, unitFactors[u])
		}
		if u > 0 && u < Parsec && unitFactors[u].Cmp(unitFactors[u+1]) >= 0 {
			t.Errorf("unitFactors[%v] >= unitFactors[%v]", u, u+1)
		}
	}
}

func TestUnit_Format(t *testing.T) {
	tests := []struct {
		unit         Unit
		format, want string
	}{
		// %T verb
		{Meter, "%T", "precision.Unit"},
		// %q verb
		{LightYear, "%q", "\"ly\""},
		{LightYear, "%5q", " \"ly\""},
		{LightYear, "%05q", " \"ly\""}, // '0' is ignored
		{LightYear, "%-5q", "\"ly\" "},
		// %s verb
		{Kilometer, "%s", "km"},
		{Kilometer, "%4s", "  km"},
		{Kilometer, "%+4s", "  km"}, // '+' is ignored
		{Kilometer, "%-4s", "km  "},
		// %v verb
		{Meter, "%v", "m"},
		{Meter, "%3v", "  m"},
		{Meter, "%-3v", "m  "},
		// %c verb
		{Parsec, "%c", "pc"},
		{Parsec, "%#4c", "  pc"}, // '#' is ignored
		// wrong verbs
		{Meter, "%b", "%!b(precision.Unit=m)"},
		{Meter, "%d", "%!d(precision.Unit=m)"},
	}
	for _, tt := range tests {
		got := fmt.Sprintf(tt.format, tt.unit)
		if got != tt.want {
			t.Errorf("fmt.Sprintf(%q, %v) = %q, want %q", tt.format, tt.unit, got, tt.want)
		}
	}
}

func TestUnit_JSON(t *testing.T) {
	type payload struct {
		Unit Unit     `json:"unit"`
		Null NullUnit `json:"null"`
		Set  NullUnit `json:"set"`
	}

	t.Run("marshal", func(t *testing.T) {
		in := payload{Unit: LightYear, Set: NullUnit{Unit: Kilometer, Valid: true}}
		got, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		want := `{"unit":"ly","null":null,"set":"km"}`
		if string(got) != want {
			t.Errorf("json.Marshal = %s, want %s", got, want)
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		var got payload
		err := json.Unmarshal([]byte(`{"unit":"pc","null":null,"set":"m"}`), &got)
		if err != nil {
			t.Fatalf("json.Unmarshal failed: %v", err)
		}
		want := payload{Unit: Parsec, Set: NullUnit{Unit: Meter, Valid: true}}
		if got != want {
			t.Errorf("json.Unmarshal = %+v, want %+v", got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		var got payload
		err := json.Unmarshal([]byte(`{"unit":"ft"}`), &got)
		if err == nil {
			t.Errorf("json.Unmarshal did not fail")
		}
	})
}

func TestUnit_Text(t *testing.T) {
	for u := Unit(0); int(u) < len(codeLookup); u++ {
		text, err := u.MarshalText()
		if err != nil {
			t.Errorf("%v.MarshalText() failed: %v", u, err)
			continue
		}
		var got Unit
		if err := got.UnmarshalText(text); err != nil {
			t.Errorf("UnmarshalText(%q) failed: %v", text, err)
			continue
		}
		if got != u {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, u)
		}
		appended, _ := u.AppendText([]byte("unit:"))
		if string(appended) != "unit:"+u.Code() {
			t.Errorf("%v.AppendText() = %q", u, appended)
		}
	}
}

func TestUnit_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got Unit
		if err := got.Scan([]byte("km")); err != nil || got != Kilometer {
			t.Errorf("Scan([]byte(\"km\")) = %v, %v", got, err)
		}
		if err := got.Scan("ly"); err != nil || got != LightYear {
			t.Errorf("Scan(\"ly\") = %v, %v", got, err)
		}
		v, err := got.Value()
		if err != nil || v != "ly" {
			t.Errorf("Value() = %v, %v", v, err)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []any{nil, int64(1), "ft"}
		for _, tt := range tests {
			var got Unit
			if err := got.Scan(tt); err == nil {
				t.Errorf("Scan(%v) did not fail", tt)
			}
		}
	})
}

func TestNullUnit_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got := NullUnit{Unit: Meter, Valid: true}
		if err := got.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) failed: %v", err)
		}
		if got.Valid || got.Unit != Centimeter {
			t.Errorf("Scan(nil) = %+v", got)
		}
		if v, err := got.Value(); v != nil || err != nil {
			t.Errorf("Value() = %v, %v", v, err)
		}
		if err := got.Scan("au"); err != nil || !got.Valid || got.Unit != AstronomicalUnit {
			t.Errorf("Scan(\"au\") = %+v, %v", got, err)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{"UUU"}
		for _, tt := range tests {
			got := NullUnit{}
			err := got.Scan([]byte(tt))
			if err == nil {
				t.Errorf("Scan(%q) did not fail", tt)
			}
		}
	})
}

func TestParseLength(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			amount, unit, want string
		}{
			{"1", "cm", "1"},
			{"2.5", "m", "250"},
			{"-3", "km", "-300000"},
			{"12", "mm", "1.2"},
			{"0.2", "nm", "0.00000001"},
			{"0.05", "nm", "0"},
			{"1", "au", "14959787070000"},
			{"35000", "ly", "33112556654032800000000"},
			{"1e-3", "Light-Year", "946073047258080"},
		}
		for _, tt := range tests {
			got, err := ParseLength[Standard](tt.amount, tt.unit)
			if err != nil {
				t.Errorf("ParseLength(%q, %q) failed: %v", tt.amount, tt.unit, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("ParseLength(%q, %q) = %q, want %q", tt.amount, tt.unit, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			amount, unit string
		}{
			{"1", "ft"},
			{"x", "m"},
			{"", "cm"},
		}
		for _, tt := range tests {
			_, err := ParseLength[Standard](tt.amount, tt.unit)
			if err == nil {
				t.Errorf("ParseLength(%q, %q) did not fail", tt.amount, tt.unit)
			}
		}
	})

	t.Run("panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParseLength(\"1\", \"ft\") did not panic")
			}
		}()
		MustParseLength[Standard]("1", "ft")
	})
}

func TestFixed_FromUnit(t *testing.T) {
	tests := []struct {
		x    string
		unit Unit
		want string
	}{
		{"1", Meter, "100"},
		{"3", Kilometer, "300000"},
		{"-1.5", Millimeter, "-0.15"},
		{"2", Centimeter, "2"},
	}
	for _, tt := range tests {
		x := MustParseFixed[Standard](tt.x)
		got := x.FromUnit(tt.unit)
		if got.String() != tt.want {
			t.Errorf("%v.FromUnit(%v) = %q, want %q", x, tt.unit, got, tt.want)
		}
		if back := got.ToUnit(tt.unit); back.Sub(x).Abs().Cmp(MustParseFixed[Standard]("0.0000001")) > 0 {
			t.Errorf("%v.ToUnit(%v) = %q, want %q", got, tt.unit, back, x)
		}
	}
}

func TestFixed_ToUnit(t *testing.T) {
	tests := []struct {
		x    string
		unit Unit
		want string
	}{
		{"250", Meter, "2.5"},
		{"150000", Kilometer, "1.5"},
		{"33112556654032800000000", LightYear, "35000"},
		{"-7", Centimeter, "-7"},
	}
	for _, tt := range tests {
		x := MustParseFixed[Standard](tt.x)
		got := x.ToUnit(tt.unit)
		if got.String() != tt.want {
			t.Errorf("%v.ToUnit(%v) = %q, want %q", x, tt.unit, got, tt.want)
		}
	}
}
