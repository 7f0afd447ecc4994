package recruitee

import "context"

// itemKeys is the ordered list of response fields the item array may appear
// under. The remote API does not contractually guarantee its field naming,
// so this is an explicit compatibility shim; do not extend it without a
// matching test fixture.
var itemKeys = []string{"hits", "candidates", "items", "results"}

// PageFetcher fetches one page of search results. The production
// implementation is Client.SearchCandidatesAdvanced; tests substitute mocks.
type PageFetcher func(ctx context.Context, limit, offset int) (map[string]interface{}, error)

// SearchAll iterates the advanced search endpoint and collects up to
// maxRecords items (unlimited when maxRecords <= 0), starting at offset and
// requesting pageSize items per call. Iteration stops when the cap is
// reached, when a page comes back shorter than requested, or when a page is
// empty.
func (c *Client) SearchAll(ctx context.Context, filters FilterSource, pageSize, offset, maxRecords int) ([]interface{}, error) {
	fetch := func(ctx context.Context, limit, offset int) (map[string]interface{}, error) {
		return c.SearchCandidatesAdvanced(ctx, filters, limit, offset)
	}
	return collectPages(ctx, fetch, pageSize, offset, maxRecords)
}

func collectPages(ctx context.Context, fetch PageFetcher, pageSize, offset, maxRecords int) ([]interface{}, error) {
	if pageSize <= 0 {
		pageSize = 60
	}
	var out []interface{}
	for {
		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		items := extractItems(page)
		if len(items) == 0 {
			return out, nil
		}
		out = append(out, items...)
		offset += len(items)

		if maxRecords > 0 && len(out) >= maxRecords {
			return out[:maxRecords], nil
		}
		if len(items) < pageSize {
			return out, nil
		}
	}
}

// extractItems pulls the item array out of a search response, trying each
// known key in order.
func extractItems(page map[string]interface{}) []interface{} {
	for _, key := range itemKeys {
		if raw, ok := page[key]; ok {
			if items, ok := raw.([]interface{}); ok {
				return items
			}
		}
	}
	return nil
}
