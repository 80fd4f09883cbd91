package tools

import "fmt"

var validThemes = map[string]bool{
	"light":  true,
	"dark":   true,
	"system": true,
}

func (r *Registry) setTheme(params map[string]string) Result {
	if r.theme == nil {
		return Data("Error: theme switching not available")
	}

	theme := params["theme"]
	if !validThemes[theme] {
		return Data(fmt.Sprintf("Error: unknown theme %q (want light, dark or system)", theme))
	}

	if err := r.theme.SetTheme(theme); err != nil {
		return Data(fmt.Sprintf("Error: %v", err))
	}
	return Action()
}
