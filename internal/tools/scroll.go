package tools

import "fmt"

func (r *Registry) scroll(params map[string]string) Result {
	if r.scroller == nil {
		return Data("Error: scrolling not available")
	}

	position := params["position"]
	if position == "" {
		return Data("Error: missing position parameter")
	}

	if err := r.scroller.Scroll(position); err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Action()
}
