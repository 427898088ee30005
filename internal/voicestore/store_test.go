package voicestore

import (
	"context"
	"errors"
	"testing"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		input   string
		want    Gender
		wantErr bool
	}{
		{"M", GenderMale, false},
		{"f", GenderFemale, false},
		{" x ", GenderNeutral, false},
		{"", "", true},
		{"female", "", true},
	}

	for _, tt := range tests {
		got, err := ParseGender(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGender(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGender(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMemoryVoiceStore_InsertGet(t *testing.T) {
	store := NewMemoryVoiceStore()
	ctx := context.Background()

	rec := testVoice("af_sarah", GenderFemale, []float32{1, 2})
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := store.Get(ctx, "af_sarah")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "af_sarah" || got.StyleVector[1] != 2 {
		t.Errorf("Get() = %+v, want af_sarah with vector [1 2]", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the store")
	}
}

func TestMemoryVoiceStore_Insert_Duplicate(t *testing.T) {
	store := NewMemoryVoiceStore()
	ctx := context.Background()

	store.Insert(ctx, testVoice("v", GenderMale, []float32{1}))
	err := store.Insert(ctx, testVoice("v", GenderMale, []float32{2}))

	var dupErr *DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("error = %v, want *DuplicateKeyError", err)
	}

	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("Count() = %v, want 1", count)
	}
}

func TestMemoryVoiceStore_Upsert_Replaces(t *testing.T) {
	store := NewMemoryVoiceStore()
	ctx := context.Background()

	store.Upsert(ctx, testVoice("v", GenderMale, []float32{1}))
	updated := testVoice("v", GenderMale, []float32{9})
	if err := store.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, _ := store.Get(ctx, "v")
	if got.StyleVector[0] != 9 {
		t.Errorf("StyleVector = %v, want [9]", got.StyleVector)
	}
}

func TestMemoryVoiceStore_Get_NotFound(t *testing.T) {
	store := NewMemoryVoiceStore()

	_, err := store.Get(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
}

func TestMemoryVoiceStore_Get_ReturnsCopy(t *testing.T) {
	store := NewMemoryVoiceStore()
	ctx := context.Background()

	store.Insert(ctx, testVoice("v", GenderMale, []float32{1, 2}))

	got, _ := store.Get(ctx, "v")
	got.StyleVector[0] = 99

	again, _ := store.Get(ctx, "v")
	if again.StyleVector[0] != 1 {
		t.Error("store state was mutated through a returned record")
	}
}

func TestMemoryVoiceStore_Select(t *testing.T) {
	store := NewMemoryVoiceStore()
	ctx := context.Background()

	store.Upsert(ctx, testVoice("af_sarah", GenderFemale, []float32{1}))
	store.Upsert(ctx, testVoice("am_adam", GenderMale, []float32{2}))

	matched, err := store.Select(ctx, Selector{Gender: GenderFemale})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "af_sarah" {
		t.Errorf("Select(gender=F) = %v, want [af_sarah]", matched)
	}

	matched, _ = store.Select(ctx, Selector{})
	if len(matched) != 2 {
		t.Errorf("Select(all) matched %d, want 2", len(matched))
	}
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("gender=M,lang=en-us,quality>=70,name=af_*,synthetic=false")
	if err != nil {
		t.Fatalf("ParseSelector() error = %v", err)
	}

	if sel.Gender != GenderMale {
		t.Errorf("Gender = %v, want M", sel.Gender)
	}
	if sel.Language != "en-us" {
		t.Errorf("Language = %v, want en-us", sel.Language)
	}
	if sel.MinQuality == nil || *sel.MinQuality != 70 {
		t.Errorf("MinQuality = %v, want 70", sel.MinQuality)
	}
	if sel.MaxQuality != nil {
		t.Errorf("MaxQuality = %v, want unset", *sel.MaxQuality)
	}
	if sel.NamePattern != "af_*" {
		t.Errorf("NamePattern = %v, want af_*", sel.NamePattern)
	}
	if sel.Synthetic == nil || *sel.Synthetic != false {
		t.Errorf("Synthetic = %v, want false", sel.Synthetic)
	}
}

func TestParseSelector_Empty(t *testing.T) {
	sel, err := ParseSelector("")
	if err != nil {
		t.Fatalf("ParseSelector(\"\") error = %v", err)
	}
	if !sel.Matches(testVoice("anything", GenderNeutral, []float32{1})) {
		t.Error("empty selector should match everything")
	}
}

func TestParseSelector_QualityForms(t *testing.T) {
	sel, err := ParseSelector("quality<=40")
	if err != nil {
		t.Fatalf("ParseSelector() error = %v", err)
	}
	if sel.MaxQuality == nil || *sel.MaxQuality != 40 {
		t.Errorf("MaxQuality = %v, want 40", sel.MaxQuality)
	}

	sel, err = ParseSelector("quality=50")
	if err != nil {
		t.Fatalf("ParseSelector() error = %v", err)
	}
	if sel.MinQuality == nil || sel.MaxQuality == nil || *sel.MinQuality != 50 || *sel.MaxQuality != 50 {
		t.Errorf("quality=50 should set both bounds, got %v/%v", sel.MinQuality, sel.MaxQuality)
	}
}

func TestParseSelector_Invalid(t *testing.T) {
	invalid := []string{
		"nonsense",
		"color=blue",
		"gender=Q",
		"quality=high",
		"synthetic=vielleicht",
		"name=",
	}
	for _, text := range invalid {
		if _, err := ParseSelector(text); err == nil {
			t.Errorf("ParseSelector(%q) should fail", text)
		}
	}
}

func TestSelector_String(t *testing.T) {
	minQ, maxQ := 70, 90
	sel := Selector{Gender: GenderFemale, MinQuality: &minQ, MaxQuality: &maxQ, NamePattern: "af_*"}
	want := "gender=F,quality>=70,quality<=90,name=af_*"
	if sel.String() != want {
		t.Errorf("String() = %v, want %v", sel.String(), want)
	}

	if (Selector{}).String() != "(alle)" {
		t.Errorf("empty String() = %v, want (alle)", (Selector{}).String())
	}
}

func TestSelector_Matches_NamePattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"af_*", "af_sarah", true},
		{"af_*", "am_adam", false},
		{"*_sarah", "af_sarah", true},
		{"af_sarah", "af_sarah", true},
		{"af_sarah", "af_sarah2", false},
		{"*", "anything", true},
		{"a*m*m", "am_malcolm", true},
	}

	for _, tt := range tests {
		sel := Selector{NamePattern: tt.pattern}
		rec := testVoice(tt.name, GenderMale, []float32{1})
		if got := sel.Matches(rec); got != tt.want {
			t.Errorf("Matches(pattern %q, name %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}
