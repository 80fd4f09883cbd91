package tools

import "fmt"

func (r *Registry) navigate(params map[string]string) Result {
	if r.nav == nil {
		return Data("Error: navigation not available")
	}

	url := params["url"]
	if url == "" {
		return Data("Error: missing url parameter")
	}

	if err := r.nav.Navigate(url); err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Action()
}

func (r *Registry) search(params map[string]string) Result {
	if r.nav == nil {
		return Data("Error: navigation not available")
	}

	query := params["query"]
	if query == "" {
		return Data("Error: missing query parameter")
	}

	if err := r.nav.Search(query); err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Action()
}
