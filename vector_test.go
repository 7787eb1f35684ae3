package precision

import (
	"encoding/json"
	"testing"
)

func TestParseVector(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s, want string
		}{
			{"(X=1,Y=2,Z=3)", "(X=1,Y=2,Z=3)"},
			{"(x=1, y=2, z=3)", "(X=1,Y=2,Z=3)"},
			{"(Z=3,X=1,Y=2)", "(X=1,Y=2,Z=3)"},
			{"X=-1.5,Y=0,Z=0.25", "(X=-1.5,Y=0,Z=0.25)"},
			{" (X=1e3,Y=2,Z=3) ", "(X=1000,Y=2,Z=3)"},
		}
		for _, tt := range tests {
			got, err := ParseVector[Fixed](tt.s)
			if err != nil {
				t.Errorf("ParseVector[Fixed](%q) failed: %v", tt.s, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("ParseVector[Fixed](%q) = %q, want %q", tt.s, got, tt.want)
			}
			gotf, err := ParseVector[Float](tt.s)
			if err != nil {
				t.Errorf("ParseVector[Float](%q) failed: %v", tt.s, err)
				continue
			}
			if gotf.String() != tt.want {
				t.Errorf("ParseVector[Float](%q) = %q, want %q", tt.s, gotf, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"",
			"()",
			"(X=1,Y=2)",
			"(X=1,Y=2,Z=3,W=4)",
			"(X=1,Y=2,W=3)",
			"(X=1,X=2,Z=3)",
			"(X=a,Y=2,Z=3)",
			"(X=1;Y=2;Z=3)",
			"(X1,Y=2,Z=3)",
		}
		for _, tt := range tests {
			_, err := ParseVector[Fixed](tt)
			if err == nil {
				t.Errorf("ParseVector(%q) did not fail", tt)
			}
		}
	})
}

func TestMustParseVector(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustParseVector(\"(X=1)\") did not panic")
			}
		}()
		MustParseVector[Float]("(X=1)")
	})
}

func TestVector_Arithmetic(t *testing.T) {
	v := MustParseVector[Fixed]("(X=1,Y=2,Z=3)")
	w := MustParseVector[Fixed]("(X=4,Y=5,Z=6)")
	two := FixedFromInt[Standard](2)
	tests := []struct {
		name string
		got  VectorFixed
		want string
	}{
		{"Add", v.Add(w), "(X=5,Y=7,Z=9)"},
		{"Sub", v.Sub(w), "(X=-3,Y=-3,Z=-3)"},
		{"Mul", v.Mul(w), "(X=4,Y=10,Z=18)"},
		{"Quo", w.Quo(v), "(X=4,Y=2.5,Z=2)"},
		{"MulScalar", v.MulScalar(two), "(X=2,Y=4,Z=6)"},
		{"QuoScalar", v.QuoScalar(two), "(X=0.5,Y=1,Z=1.5)"},
		{"Neg", v.Neg(), "(X=-1,Y=-2,Z=-3)"},
		{"Cross", v.Cross(w), "(X=-3,Y=6,Z=-3)"},
		{"ProjectOnTo", v.ProjectOnTo(MustParseVector[Fixed]("(X=0,Y=0,Z=2)")), "(X=0,Y=0,Z=3)"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%v = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	if got := v.Dot(w).String(); got != "32" {
		t.Errorf("Dot = %q, want %q", got, "32")
	}
	if got := v.SizeSquared().String(); got != "14" {
		t.Errorf("SizeSquared = %q, want %q", got, "14")
	}
	if got := v.Sub(w).AbsSum().String(); got != "9" {
		t.Errorf("AbsSum = %q, want %q", got, "9")
	}
}

func TestVector_Size(t *testing.T) {
	tests := []struct {
		s, want string
	}{
		{"(X=0,Y=0,Z=0)", "0"},
		{"(X=3,Y=4,Z=0)", "5"},
		{"(X=3,Y=4,Z=12)", "13"},
		{"(X=-2,Y=-3,Z=-6)", "7"},
	}
	for _, tt := range tests {
		got := MustParseVector[Fixed](tt.s).Size()
		if got.String() != tt.want {
			t.Errorf("%v.Size() = %q, want %q", tt.s, got, tt.want)
		}
		gotf := MustParseVector[Float](tt.s).Size()
		if gotf.String() != tt.want {
			t.Errorf("%v.Size() = %q, want %q", tt.s, gotf, tt.want)
		}
	}
}

func TestVector_Normal(t *testing.T) {
	tests := []struct {
		s, want string
	}{
		{"(X=0,Y=3,Z=4)", "(X=0,Y=0.6,Z=0.8)"},
		{"(X=-5,Y=0,Z=0)", "(X=-1,Y=0,Z=0)"},
		{"(X=0,Y=0,Z=0)", "(X=0,Y=0,Z=0)"},
		{"(X=0.000000001,Y=0,Z=0)", "(X=0,Y=0,Z=0)"},
	}
	for _, tt := range tests {
		got := MustParseVector[Float](tt.s).Normal()
		want := MustParseVector[Float](tt.want)
		if !got.EqualWithin(want, MustNewFloat(1e-30)) {
			t.Errorf("%v.Normal() = %v, want %v", tt.s, got, want)
		}
	}

	got := MustParseVector[Fixed]("(X=0,Y=3,Z=4)").Normal()
	want := MustParseVector[Fixed]("(X=0,Y=0.6,Z=0.8)")
	if !got.Equal(want) {
		t.Errorf("Normal() = %v, want %v", got, want)
	}
}

func TestVector_Equal(t *testing.T) {
	v := MustParseVector[Fixed]("(X=1,Y=2,Z=3)")
	tests := []struct {
		w    string
		want bool
	}{
		{"(X=1,Y=2,Z=3)", true},
		{"(X=1,Y=2,Z=3.00000001)", true},
		{"(X=1,Y=2,Z=3.0000001)", false},
		{"(X=1,Y=2,Z=-3)", false},
	}
	for _, tt := range tests {
		w := MustParseVector[Fixed](tt.w)
		if got := v.Equal(w); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", v, w, got, tt.want)
		}
	}
	if !(VectorFixed{}).IsZero() {
		t.Errorf("VectorFixed{}.IsZero() = false")
	}
}

func TestVector_Axis(t *testing.T) {
	v := MustParseVector[Float]("(X=1,Y=2,Z=3)")
	tests := []struct {
		axis Axis
		want string
	}{
		{AxisX, "1"},
		{AxisY, "2"},
		{AxisZ, "3"},
	}
	for _, tt := range tests {
		if got := v.Axis(tt.axis).String(); got != tt.want {
			t.Errorf("Axis(%v) = %q, want %q", tt.axis, got, tt.want)
		}
	}
	got := v.WithAxis(AxisY, FloatFromInt(-7))
	if got.String() != "(X=1,Y=-7,Z=3)" {
		t.Errorf("WithAxis(Y, -7) = %q", got)
	}
	if v.String() != "(X=1,Y=2,Z=3)" {
		t.Errorf("WithAxis modified its receiver")
	}
	if AxisZ.String() != "Z" || Axis(9).String() != "Axis(9)" {
		t.Errorf("Axis.String() = %q, %q", AxisZ, Axis(9))
	}
}

func TestVector_Conversion(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		v := MustParseVector[Fixed]("(X=1.5,Y=-2,Z=0.00000001)")
		f := FixedVectorToFloat(v)
		if !closeTo(f.X, 1.5, 0) || !closeTo(f.Y, -2, 0) {
			t.Errorf("FixedVectorToFloat(%v) = %v", v, f)
		}
		back, err := FloatVectorToFixed[Standard](f)
		if err != nil {
			t.Fatalf("FloatVectorToFixed(%v) failed: %v", f, err)
		}
		if back.String() != v.String() {
			t.Errorf("FloatVectorToFixed(%v) = %v, want %v", f, back, v)
		}
	})

	t.Run("error", func(t *testing.T) {
		f := VectorFloat{X: MustParseFloat("-Inf")}
		if _, err := FloatVectorToFixed[Standard](f); err == nil {
			t.Errorf("FloatVectorToFixed(%v) did not fail", f)
		}
	})
}

func TestVector_Text(t *testing.T) {
	type payload struct {
		Position VectorFixed `json:"position"`
	}
	in := payload{Position: MustParseVector[Fixed]("(X=1,Y=-2.5,Z=3)")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	want := `{"position":"(X=1,Y=-2.5,Z=3)"}`
	if string(data) != want {
		t.Errorf("json.Marshal = %s, want %s", data, want)
	}
	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if out.Position.String() != in.Position.String() {
		t.Errorf("json.Unmarshal = %v, want %v", out.Position, in.Position)
	}
}

func TestVector_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got VectorFloat
		if err := got.Scan([]byte("(X=1,Y=2,Z=3)")); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if got.String() != "(X=1,Y=2,Z=3)" {
			t.Errorf("Scan = %v", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []any{nil, int64(1), "(X=1)"}
		for _, tt := range tests {
			var got VectorFloat
			if err := got.Scan(tt); err == nil {
				t.Errorf("Scan(%v) did not fail", tt)
			}
		}
	})
}
