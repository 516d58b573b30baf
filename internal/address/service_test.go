package address

import (
	"context"
	"testing"

	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/maps"
)

type stubLookup struct {
	suggestions []maps.AutocompleteSuggestion
	place       *maps.ResolvedPlace
	lastInput   maps.AutocompleteRequest
	lastPlaceID string
}

func (s *stubLookup) Autocomplete(_ context.Context, req maps.AutocompleteRequest) ([]maps.AutocompleteSuggestion, error) {
	s.lastInput = req
	return s.suggestions, nil
}

func (s *stubLookup) ResolvePlace(_ context.Context, placeID string) (*maps.ResolvedPlace, error) {
	s.lastPlaceID = placeID
	return s.place, nil
}

func TestSuggestMapsRegionAndLanguage(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{suggestions: []maps.AutocompleteSuggestion{
		{PlaceID: "plc-1", Description: "Maginhawa St, Quezon City"},
	}}
	svc := &service{maps: lookup}

	got, err := svc.Suggest(context.Background(), SuggestRequest{Query: "maginhawa", Country: "ph", Language: "en"})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "plc-1" {
		t.Fatalf("unexpected suggestions %+v", got)
	}
	if len(lookup.lastInput.IncludedRegionCodes) != 1 || lookup.lastInput.IncludedRegionCodes[0] != "PH" {
		t.Fatalf("expected uppercased region code, got %+v", lookup.lastInput.IncludedRegionCodes)
	}
	if lookup.lastInput.LanguageCode != "en" {
		t.Fatalf("unexpected language %q", lookup.lastInput.LanguageCode)
	}
}

func TestSuggestRequiresQuery(t *testing.T) {
	t.Parallel()

	svc := &service{maps: &stubLookup{}}
	_, err := svc.Suggest(context.Background(), SuggestRequest{Query: "   "})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveBuildsConfirmedDestination(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{place: &maps.ResolvedPlace{
		PlaceID:          "plc-9",
		FormattedAddress: "88 Session Rd, Baguio",
		Lat:              16.4119,
		Lng:              120.5933,
	}}
	svc := &service{maps: lookup}

	dest, err := svc.Resolve(context.Background(), ResolveRequest{PlaceID: "plc-9"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if lookup.lastPlaceID != "plc-9" {
		t.Fatalf("unexpected place id sent %q", lookup.lastPlaceID)
	}
	if !dest.Confirmed() {
		t.Fatal("expected resolved destination to be confirmed")
	}
	if dest.Label != "88 Session Rd, Baguio" || dest.Lat != 16.4119 || dest.Lng != 120.5933 {
		t.Fatalf("unexpected destination %+v", dest)
	}
}

func TestResolveRejectsZeroLocation(t *testing.T) {
	t.Parallel()

	svc := &service{maps: &stubLookup{place: &maps.ResolvedPlace{PlaceID: "plc-0"}}}
	_, err := svc.Resolve(context.Background(), ResolveRequest{PlaceID: "plc-0"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
