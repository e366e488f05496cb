package economy

import "testing"

func TestMedians(t *testing.T) {
	cases := []struct {
		name       string
		set        Comparables
		current    float64
		wantLocal  float64
		wantGlobal float64
	}{
		{
			name:       "odd and even counts",
			set:        Comparables{Local: []float64{10, 30, 20}, Global: []float64{10, 20, 30, 40}},
			current:    99,
			wantLocal:  20,
			wantGlobal: 25,
		},
		{
			name:       "empty sets fall back to current",
			set:        Comparables{},
			current:    42,
			wantLocal:  42,
			wantGlobal: 42,
		},
		{
			name:       "non-positive values are ignored",
			set:        Comparables{Local: []float64{0, -5}, Global: []float64{0, 7}},
			current:    3,
			wantLocal:  3,
			wantGlobal: 7,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			local, global := tc.set.Medians(tc.current)
			if local != tc.wantLocal || global != tc.wantGlobal {
				t.Fatalf("got local=%v global=%v, want local=%v global=%v", local, global, tc.wantLocal, tc.wantGlobal)
			}
		})
	}
}

func TestCostBasis_Errors(t *testing.T) {
	recipes := []Recipe{{
		Inputs:  map[string]float64{"wood": 2},
		Outputs: map[string]float64{"crate": 1},
	}}

	if _, err := CostBasis("crate", recipes, map[string]float64{}, 15); err == nil {
		t.Fatal("expected error for missing input reference price")
	}
	if _, err := CostBasis("crate", recipes, map[string]float64{"wood": 0}, 15); err == nil {
		t.Fatal("expected error for zero input reference price")
	}
	if _, err := CostBasis("gondola", recipes, map[string]float64{"wood": 10}, 15); err == nil {
		t.Fatal("expected error when no recipe produces the resource")
	}
}

func TestBuildContractID_Deterministic(t *testing.T) {
	a := BuildContractID(KindImport, "Marco Polo", "bld-12", "Wood")
	b := BuildContractID(KindImport, "marco polo", "bld-12", "wood")
	if a != b {
		t.Fatalf("ids should match regardless of case/whitespace: %q vs %q", a, b)
	}
	if a == BuildContractID(KindMarkupBuy, "marco polo", "bld-12", "wood") {
		t.Fatal("different kinds must produce different ids")
	}
	if a != "contract_import_marco-polo_bld-12_wood" {
		t.Fatalf("unexpected id format: %q", a)
	}
}

func TestMetadataValidate(t *testing.T) {
	ok := Metadata{Exclusive: &ExclusiveTerms{PremiumPct: 0.25, StratagemID: "s1"}}
	if err := ok.Validate(KindImportExclusive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ok.Validate(KindImport); err == nil {
		t.Fatal("exclusive terms on a plain import must be rejected")
	}
	missing := Metadata{Suspension: &SuspensionRef{}}
	if err := missing.Validate(KindPublicSell); err == nil {
		t.Fatal("suspension ref without stratagem id must be rejected")
	}
	if err := (Metadata{}).Validate(KindRecurrent); err != nil {
		t.Fatalf("empty metadata is always valid, got %v", err)
	}
}
