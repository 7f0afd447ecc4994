package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/recruitee"
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/registry"
)

// toolCatalog returns the full, closed tool set in registration order.
func (s *Server) toolCatalog() []registry.Tool {
	return []registry.Tool{
		{
			Name:        "search_offers",
			Description: "List job offers (postings) for the company.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"scope":               {Type: []string{"string", "null"}, Description: "Filter by offer scope (published, active, archived, not_archived).", Enum: []string{"published", "active", "archived", "not_archived"}},
					"view_mode":           {Type: []string{"string", "null"}, Description: "Payload verbosity, brief or default.", Enum: []string{"brief", "default"}},
					"limit":               {Type: []string{"integer", "null"}, Description: "Maximum number of offers to return."},
					"offset":              {Type: []string{"integer", "null"}, Description: "Listing offset for pagination."},
					"include_description": {Type: []string{"boolean", "null"}, Description: "Include offer descriptions in the payload."},
				},
			},
			Handler: s.toolSearchOffers,
		},
		{
			Name:        "get_offer",
			Description: "Fetch a single offer by identifier.",
			InputSchema: &registry.JSONSchema{
				Type:     "object",
				Required: []string{"offer_id"},
				Properties: map[string]registry.PropertySchema{
					"offer_id": {Type: []string{"integer", "string"}, Description: "Offer identifier."},
				},
			},
			Handler: s.toolGetOffer,
		},
		{
			Name:        "list_candidates",
			Description: "List candidates with plain offset pagination.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"limit":  {Type: []string{"integer", "null"}},
					"offset": {Type: []string{"integer", "null"}},
				},
			},
			Handler: s.toolListCandidates,
		},
		{
			Name:        "search_candidates",
			Description: "Search candidates by text query.",
			InputSchema: &registry.JSONSchema{
				Type:     "object",
				Required: []string{"query"},
				Properties: map[string]registry.PropertySchema{
					"query": {Type: "string", Description: "Query string matched against candidate fields."},
					"page":  {Type: []string{"integer", "null"}},
					"limit": {Type: []string{"integer", "null"}},
				},
			},
			Handler: s.toolSearchCandidates,
		},
		{
			Name:        "search_candidates_advanced",
			Description: "Advanced candidate search using a JSON filter array, with optional paginated collection.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"filters":     {Type: []string{"array", "null"}, Description: "Array of filter objects: {field, eq|gte|lte|any|all}.", Items: &registry.PropertySchema{Type: "object"}},
					"limit":       {Type: []string{"integer", "null"}, Description: "Page size for each search call."},
					"offset":      {Type: []string{"integer", "null"}, Description: "Starting offset."},
					"max_records": {Type: []string{"integer", "null"}, Description: "Collect pages until this many records are gathered."},
				},
			},
			Handler: s.toolSearchCandidatesAdvanced,
		},
		{
			Name:        "get_candidate",
			Description: "Fetch a candidate by identifier.",
			InputSchema: &registry.JSONSchema{
				Type:     "object",
				Required: []string{"candidate_id"},
				Properties: map[string]registry.PropertySchema{
					"candidate_id": {Type: []string{"integer", "string"}},
				},
			},
			Handler: s.toolGetCandidate,
		},
		{
			Name:        "create_candidate",
			Description: "Create a new candidate record.",
			InputSchema: &registry.JSONSchema{
				Type:     "object",
				Required: []string{"first_name", "last_name", "email"},
				Properties: map[string]registry.PropertySchema{
					"first_name":    {Type: "string"},
					"last_name":     {Type: "string"},
					"email":         {Type: "string"},
					"phone":         {Type: []string{"string", "null"}},
					"source":        {Type: []string{"string", "null"}},
					"offer_id":      {Type: []string{"integer", "null"}},
					"pipeline_id":   {Type: []string{"integer", "null"}},
					"notes":         {Type: []string{"string", "null"}},
					"custom_fields": {Type: []string{"object", "null"}},
				},
			},
			Handler: s.toolCreateCandidate,
		},
		{
			Name:        "list_pipelines",
			Description: "List recruiting pipelines and their stages.",
			InputSchema: &registry.JSONSchema{
				Type:       "object",
				Properties: map[string]registry.PropertySchema{},
			},
			Handler: s.toolListPipelines,
		},
	}
}

func (s *Server) toolSearchOffers(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return s.client.ListOffers(ctx, recruitee.ListOffersOptions{
		Scope:              stringArg(args, "scope"),
		ViewMode:           stringArg(args, "view_mode"),
		Limit:              intArg(args, "limit"),
		Offset:             intArg(args, "offset"),
		IncludeDescription: boolArg(args, "include_description"),
	})
}

func (s *Server) toolGetOffer(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, ok := idArg(args, "offer_id")
	if !ok {
		return nil, &recruitee.ValidationError{Message: "'offer_id' is required"}
	}
	return s.client.GetOffer(ctx, id)
}

func (s *Server) toolListCandidates(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return s.client.ListCandidates(ctx, intArg(args, "limit"), intArg(args, "offset"))
}

func (s *Server) toolSearchCandidates(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query := stringArg(args, "query")
	if query == "" {
		return nil, &recruitee.ValidationError{Message: "'query' is required"}
	}
	return s.client.SearchCandidates(ctx, query, intArg(args, "page"), intArg(args, "limit"))
}

func (s *Server) toolSearchCandidatesAdvanced(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var filters recruitee.Filters
	if raw, present := args["filters"]; present && raw != nil {
		seq, ok := raw.([]interface{})
		if !ok {
			return nil, &invalidParamsError{msg: "'filters' must be an array"}
		}
		parsed, err := recruitee.ParseFilters(seq)
		if err != nil {
			return nil, err
		}
		filters = parsed
	}

	limit := intArg(args, "limit")
	if limit <= 0 {
		limit = 60
	}
	offset := intArg(args, "offset")

	if max := intArg(args, "max_records"); max > 0 {
		hits, err := s.client.SearchAll(ctx, filters, limit, offset, max)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"hits": hits, "count": len(hits)}, nil
	}
	return s.client.SearchCandidatesAdvanced(ctx, filters, limit, offset)
}

func (s *Server) toolGetCandidate(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, ok := idArg(args, "candidate_id")
	if !ok {
		return nil, &recruitee.ValidationError{Message: "'candidate_id' is required"}
	}
	return s.client.GetCandidate(ctx, id)
}

func (s *Server) toolCreateCandidate(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var missing []string
	for _, field := range []string{"first_name", "last_name", "email"} {
		if stringArg(args, field) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &recruitee.ValidationError{
			Message: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	var customFields map[string]interface{}
	if raw, present := args["custom_fields"]; present && raw != nil {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, &invalidParamsError{msg: "'custom_fields' must be an object"}
		}
		customFields = m
	}

	return s.client.CreateCandidate(ctx, recruitee.NewCandidate{
		FirstName:    stringArg(args, "first_name"),
		LastName:     stringArg(args, "last_name"),
		Email:        stringArg(args, "email"),
		Phone:        stringArg(args, "phone"),
		Source:       stringArg(args, "source"),
		OfferID:      intArg(args, "offer_id"),
		PipelineID:   intArg(args, "pipeline_id"),
		Notes:        stringArg(args, "notes"),
		CustomFields: customFields,
	})
}

func (s *Server) toolListPipelines(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return s.client.ListPipelines(ctx)
}

// Argument helpers. JSON numbers decode as float64; identifiers may arrive
// as either numbers or strings.

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func idArg(args map[string]interface{}, key string) (string, bool) {
	switch v := args[key].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}
