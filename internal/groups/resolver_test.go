package groups

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msto63/mSW/internal/styles"
	"github.com/msto63/mSW/internal/voicestore"
)

func seedStore(t *testing.T, voices ...*voicestore.VoiceRecord) voicestore.Store {
	t.Helper()
	store := voicestore.NewMemoryVoiceStore()
	for _, v := range voices {
		if err := store.Upsert(context.Background(), v); err != nil {
			t.Fatalf("Upsert(%s) error = %v", v.Name, err)
		}
	}
	return store
}

func voice(name string, gender voicestore.Gender, vec []float32) *voicestore.VoiceRecord {
	return &voicestore.VoiceRecord{
		Name:        name,
		Gender:      gender,
		Language:    "en-us",
		Quality:     80,
		StyleVector: vec,
	}
}

func TestResolve_Centroid(t *testing.T) {
	store := seedStore(t,
		voice("a", voicestore.GenderMale, []float32{1, 0}),
		voice("b", voicestore.GenderMale, []float32{0, 1}),
		voice("c", voicestore.GenderFemale, []float32{9, 9}),
	)

	centroid, matched, err := Resolve(context.Background(), store, voicestore.Selector{Gender: voicestore.GenderMale})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(matched) != 2 {
		t.Fatalf("matched %d voices, want 2", len(matched))
	}
	if centroid[0] != 0.5 || centroid[1] != 0.5 {
		t.Errorf("centroid = %v, want [0.5 0.5]", centroid)
	}
}

func TestResolve_SingleVoice(t *testing.T) {
	vec := []float32{0.25, -1.5, 3}
	store := seedStore(t, voice("only", voicestore.GenderNeutral, vec))

	centroid, matched, err := Resolve(context.Background(), store, voicestore.Selector{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("matched %d voices, want 1", len(matched))
	}
	for i := range vec {
		if centroid[i] != vec[i] {
			t.Errorf("element %d = %v, want exactly %v", i, centroid[i], vec[i])
		}
	}
}

func TestResolve_EmptyGroup(t *testing.T) {
	store := seedStore(t, voice("a", voicestore.GenderMale, []float32{1}))

	sel, _ := voicestore.ParseSelector("gender=F,quality>=90")
	_, _, err := Resolve(context.Background(), store, sel)
	if err == nil {
		t.Fatal("Resolve() should fail for an empty group")
	}

	var emptyErr *EmptyGroupError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error type = %T, want *EmptyGroupError", err)
	}
	// The error must name the selector so the operator can correct it
	if !strings.Contains(err.Error(), "gender=F") {
		t.Errorf("error does not name the selector: %v", err)
	}
}

func TestResolve_DimensionMismatch(t *testing.T) {
	store := seedStore(t,
		voice("a", voicestore.GenderMale, []float32{1, 2}),
		voice("b", voicestore.GenderMale, []float32{1, 2, 3}),
	)

	_, _, err := Resolve(context.Background(), store, voicestore.Selector{})
	if err == nil {
		t.Fatal("Resolve() should reject mixed dimensions")
	}
	var dimErr *styles.DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Errorf("error type = %T, want *DimensionMismatchError", err)
	}
}

func TestResolve_MatchedReporting(t *testing.T) {
	store := seedStore(t,
		voice("a", voicestore.GenderMale, []float32{2}),
		voice("b", voicestore.GenderMale, []float32{4}),
	)

	centroid, matched, err := Resolve(context.Background(), store, voicestore.Selector{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// Reported records carry full rows, not just vectors
	for _, rec := range matched {
		if rec.Language != "en-us" || rec.Quality != 80 {
			t.Errorf("matched record incomplete: %+v", rec)
		}
	}
	if centroid[0] != 3 {
		t.Errorf("centroid = %v, want [3]", centroid)
	}
}
