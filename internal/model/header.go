package model

// LogoPosition places the branding logo within the rendered header block.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// HeaderConfig is the header/branding configuration for a template.
// VisibilityFlags controls which identity fields (keyed by registry field
// id) appear in the rendered header block.
type HeaderConfig struct {
	LogoPosition    LogoPosition    `json:"logo_position"`
	DocumentTitle   string          `json:"document_title"`
	VisibilityFlags map[string]bool `json:"visibility_flags"`
}

// Clone returns a deep copy of the header configuration.
func (h HeaderConfig) Clone() HeaderConfig {
	flags := make(map[string]bool, len(h.VisibilityFlags))
	for k, v := range h.VisibilityFlags {
		flags[k] = v
	}
	return HeaderConfig{
		LogoPosition:    h.LogoPosition,
		DocumentTitle:   h.DocumentTitle,
		VisibilityFlags: flags,
	}
}
