package address

import (
	"context"
	"strings"

	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/maps"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// SuggestRequest is a partial address typed by the customer.
type SuggestRequest struct {
	Query    string
	Country  string
	Language string
}

// Suggestion is a single autocomplete candidate the customer can accept.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// ResolveRequest asks for the full destination behind an accepted suggestion.
type ResolveRequest struct {
	PlaceID string
}

type Service interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
	Resolve(ctx context.Context, req ResolveRequest) (types.Destination, error)
}

type placeLookup interface {
	Autocomplete(ctx context.Context, req maps.AutocompleteRequest) ([]maps.AutocompleteSuggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (*maps.ResolvedPlace, error)
}

type service struct {
	maps placeLookup
}

func NewService(client *maps.Client) Service {
	return &service{maps: client}
}

func (s *service) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if s == nil || s.maps == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}

	payload := maps.AutocompleteRequest{
		Input: req.Query,
	}
	if country := strings.TrimSpace(req.Country); country != "" {
		payload.IncludedRegionCodes = []string{strings.ToUpper(country)}
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		payload.LanguageCode = lang
	}

	resp, err := s.maps.Autocomplete(ctx, payload)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp))
	for _, item := range resp {
		suggestions = append(suggestions, Suggestion{
			PlaceID:     item.PlaceID,
			Description: item.Description,
		})
	}
	return suggestions, nil
}

// Resolve turns an accepted suggestion into a confirmed destination. Only
// resolved places carry a place ID, so anything returned here satisfies
// Destination.Confirmed.
func (s *service) Resolve(ctx context.Context, req ResolveRequest) (types.Destination, error) {
	if s == nil || s.maps == nil {
		return types.Destination{}, pkgerrors.New(pkgerrors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		return types.Destination{}, pkgerrors.New(pkgerrors.CodeValidation, "place_id is required")
	}

	place, err := s.maps.ResolvePlace(ctx, req.PlaceID)
	if err != nil {
		return types.Destination{}, err
	}
	if place == nil {
		return types.Destination{}, pkgerrors.New(pkgerrors.CodeDependency, "place details missing")
	}
	if place.Lat == 0 && place.Lng == 0 {
		return types.Destination{}, pkgerrors.New(pkgerrors.CodeDependency, "place location missing")
	}

	label := strings.TrimSpace(place.FormattedAddress)
	if label == "" {
		label = place.PlaceID
	}

	return types.Destination{
		PlaceID: place.PlaceID,
		Label:   label,
		Lat:     place.Lat,
		Lng:     place.Lng,
	}, nil
}
