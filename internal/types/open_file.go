package types

// OpenFile is one entry of the editing session, keyed by its project-relative
// path. Modified is derived: it must equal Content != OriginalContent after
// every edit and every save.
type OpenFile struct {
	Path            string `json:"path"`
	Content         string `json:"content"`
	OriginalContent string `json:"original_content"`
	Modified        bool   `json:"modified"`
	Language        string `json:"language,omitempty"`
}

func NewOpenFile(path, content, language string) *OpenFile {
	return &OpenFile{
		Path:            path,
		Content:         content,
		OriginalContent: content,
		Language:        language,
	}
}

// SetContent records the live buffer and recomputes Modified. It reports
// whether the modified flag changed, so callers can skip redundant UI work.
func (f *OpenFile) SetContent(content string) bool {
	was := f.Modified
	f.Content = content
	f.Modified = content != f.OriginalContent
	return f.Modified != was
}

// MarkSaved records content as the last-saved state. The live buffer is left
// untouched, so an edit made while the save was in flight keeps the entry
// modified.
func (f *OpenFile) MarkSaved(content string) {
	f.OriginalContent = content
	f.Modified = f.Content != content
}
