package tools

import "fmt"

func (r *Registry) showAlert(params map[string]string) Result {
	if r.notifier == nil {
		return Data("Error: notifications not available")
	}

	message := params["message"]
	if message == "" {
		return Data("Error: missing message parameter")
	}

	level := params["type"]
	switch level {
	case "success", "error", "info":
	default:
		level = "info"
	}

	if err := r.notifier.Notify(message, level); err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Action()
}
