package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// findBusinessLimit caps results fed back into the conversation.
const findBusinessLimit = 5

func (r *Registry) findBusiness(ctx context.Context, params map[string]string) Result {
	if r.store == nil {
		return Data("Database not available.")
	}

	query := params["query"]
	if query == "" {
		return Data("Error: missing query parameter")
	}

	results, err := r.store.SearchBusinesses(ctx, query, findBusinessLimit)
	if err != nil {
		r.logger.Error("business search failed", "query", query, "error", err)
		return Data(fmt.Sprintf("Error searching: %v", err))
	}
	if len(results) == 0 {
		return Data("No businesses found matching that query.")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Data(fmt.Sprintf("Found businesses: %s", payload))
}
