package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// FileNode is one node of the tree returned by GET /api/files. The backend
// sends a fresh snapshot on every listing; nodes are never mutated here.
type FileNode struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Path      string     `json:"path,omitempty"`
	Extension string     `json:"extension,omitempty"`
	Children  []FileNode `json:"children,omitempty"`
}

func (n FileNode) IsDir() bool {
	return n.Type == NodeTypeDirectory
}

func (n FileNode) IsFile() bool {
	return n.Type == NodeTypeFile
}
