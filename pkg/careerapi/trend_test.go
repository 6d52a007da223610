package careerapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTrendPoint_KeepsServerKeyOrder(t *testing.T) {
	var p TrendPoint
	if err := json.Unmarshal([]byte(`{"react":12,"month":"Mar","python":40.5,"go":7}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := strings.Join(p.Keys, ","); got != "react,month,python,go" {
		t.Fatalf("unexpected key order %s", got)
	}
	if p.Month != "Mar" {
		t.Fatalf("unexpected month %q", p.Month)
	}
	if v, ok := p.Value("python"); !ok || v != 40.5 {
		t.Fatalf("unexpected python value %v %v", v, ok)
	}
	if _, ok := p.Value("month"); ok {
		t.Fatalf("month is not a metric")
	}
}

func TestTrendPoint_DuplicateKeysKeepFirstPosition(t *testing.T) {
	var p TrendPoint
	if err := json.Unmarshal([]byte(`{"month":"Jan","a":1,"b":2,"a":3}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := strings.Join(p.Keys, ","); got != "month,a,b" {
		t.Fatalf("unexpected keys %s", got)
	}
	if v, _ := p.Value("a"); v != 3 {
		t.Fatalf("last value should win, got %v", v)
	}
}

func TestTrendPoint_RejectsNonObject(t *testing.T) {
	var p TrendPoint
	if err := json.Unmarshal([]byte(`[1,2]`), &p); err == nil {
		t.Fatalf("expected error for array input")
	}
	if err := json.Unmarshal([]byte(`{"month":5}`), &p); err == nil {
		t.Fatalf("expected error for numeric month")
	}
	if err := json.Unmarshal([]byte(`{"month":"Jan","python":"lots"}`), &p); err == nil {
		t.Fatalf("expected error for non-numeric metric")
	}
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"15%","b":5000,"c":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != "15%" || v.B != "5000" || v.C != "" {
		t.Fatalf("unexpected values: %+v", v)
	}
	if err := json.Unmarshal([]byte(`{"a":true}`), &v); err == nil {
		t.Fatalf("expected error for boolean")
	}
}
