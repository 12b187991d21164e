package editor

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders source text with ANSI colors for the editor's preview
// pane. Construction resolves the configured style eagerly so a broken
// configuration fails during bridge initialization, where the caller can
// fall back to the plain surface.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

func NewHighlighter(styleName string) (*Highlighter, error) {
	styleName = strings.TrimSpace(styleName)
	if styleName == "" {
		styleName = "monokai"
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style: %s", styleName)
	}
	return &Highlighter{
		style:     style,
		formatter: formatters.TTY256,
	}, nil
}

// Render highlights source for the given language tag. Unknown tags fall
// back to plain analysis rather than failing the render.
func (h *Highlighter) Render(source, language string) (string, error) {
	lexer := lexerForTag(language)
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", err
	}
	return out.String(), nil
}

func lexerForTag(language string) chroma.Lexer {
	language = strings.TrimSpace(language)
	// Template files highlight well enough as HTML.
	if language == "scribe-template" {
		language = "html"
	}
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return lexer
		}
	}
	return lexers.Fallback
}

// LanguageForExtension maps a file extension to the language tag used by the
// editor, mirroring the backend's mapping for locally created files.
func LanguageForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".stpl":
		return "scribe-template"
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".json":
		return "json"
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".sql":
		return "sql"
	case ".md":
		return "markdown"
	case ".yml", ".yaml":
		return "yaml"
	case ".xml":
		return "xml"
	case ".sh":
		return "shell"
	default:
		return "plaintext"
	}
}
