package classify

import (
	"sort"
	"strings"

	"studio/internal/types"
)

// FileRef is a classified file: its display name and full project path.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Folder is one directory level inside a category, keyed by its path relative
// to the category root. Subfolder keys are unique; display order is sorted.
type Folder struct {
	Name       string             `json:"name"`
	Files      []FileRef          `json:"files"`
	Subfolders map[string]*Folder `json:"subfolders,omitempty"`
	Collapsed  bool               `json:"collapsed"`
}

// Category holds the classified files of one kind. Templates use the flat
// Files list; the rooted kinds use RootFiles plus the Folders hierarchy.
type Category struct {
	Kind      Kind               `json:"-"`
	Collapsed bool               `json:"collapsed"`
	Files     []FileRef          `json:"files,omitempty"`
	RootFiles []FileRef          `json:"root_files,omitempty"`
	Folders   map[string]*Folder `json:"folders,omitempty"`
}

// Empty reports whether the category has nothing to display.
func (c *Category) Empty() bool {
	return c == nil || len(c.Files) == 0 && len(c.RootFiles) == 0 && len(c.Folders) == 0
}

// Count is the number of entries shown on the category header: files plus
// top-level folders.
func (c *Category) Count() int {
	if c == nil {
		return 0
	}
	return len(c.Files) + len(c.RootFiles) + len(c.Folders)
}

// SortedFolders returns the category's top-level folders in name order.
func (c *Category) SortedFolders() []*Folder {
	return sortedFolders(c.Folders)
}

// SortedSubfolders returns the folder's children in name order.
func (f *Folder) SortedSubfolders() []*Folder {
	return sortedFolders(f.Subfolders)
}

func sortedFolders(m map[string]*Folder) []*Folder {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Folder, 0, len(names))
	for _, name := range names {
		out = append(out, m[name])
	}
	return out
}

// Result is the output of one classification pass.
type Result struct {
	Categories  map[Kind]*Category
	ConfigFiles []FileRef
}

// Category returns the category for a kind; never nil after Classify.
func (r *Result) Category(kind Kind) *Category {
	if r == nil {
		return nil
	}
	return r.Categories[kind]
}

type classifier struct {
	result *Result
	// arena maps kind + relative folder path to its Folder so the same path
	// always resolves to the same instance within one pass.
	arena map[Kind]map[string]*Folder
}

// Classify reorganizes a flat file-tree snapshot into the fixed categories.
// It is deterministic and total: malformed nodes are skipped, never reported.
// The collapse state sets category collapsed flags; folder flags are applied
// at render time because folder identity is display-path keyed.
func Classify(tree []types.FileNode, collapse *types.CollapseState) *Result {
	c := &classifier{
		result: &Result{Categories: map[Kind]*Category{}},
		arena:  map[Kind]map[string]*Folder{},
	}
	for _, kind := range Kinds {
		c.result.Categories[kind] = &Category{Kind: kind}
		c.arena[kind] = map[string]*Folder{}
	}
	c.walk(tree, "")
	for _, kind := range Kinds {
		c.result.Categories[kind].Collapsed = collapse.CategoryCollapsed(kind.Key())
	}
	return c.result
}

func (c *classifier) walk(nodes []types.FileNode, parent string) {
	for _, node := range nodes {
		name := strings.TrimSpace(node.Name)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		path := name
		if parent != "" {
			path = parent + "/" + name
		}
		switch {
		case node.IsFile():
			c.classifyFile(node, name, path)
		case node.IsDir():
			c.walk(node.Children, path)
		}
	}
}

func (c *classifier) classifyFile(node types.FileNode, name, path string) {
	ext := strings.ToLower(node.Extension)
	if ext == "" {
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			ext = strings.ToLower(name[idx:])
		}
	}
	ref := FileRef{Name: name, Path: path}

	// First matching rule wins.
	if name == ConfigFileName {
		c.result.ConfigFiles = append(c.result.ConfigFiles, ref)
		return
	}
	if ext == KindTemplates.Extension() {
		cat := c.result.Categories[KindTemplates]
		cat.Files = append(cat.Files, ref)
		return
	}
	for _, kind := range []Kind{KindLogic, KindData, KindStyle} {
		rel, ok := rootRelative(path, kind.Root())
		if !ok {
			continue
		}
		if ext != kind.Extension() {
			return
		}
		c.place(kind, ref, rel)
		return
	}
	// Files outside every convention are not shown.
}

// rootRelative reports whether path sits under the root directory, matching
// the root at any depth so an unrelated parent directory does not hide a
// nested category root. The relative path starts after the first match.
func rootRelative(path, root string) (string, bool) {
	if strings.HasPrefix(path, root+"/") {
		return strings.TrimPrefix(path, root+"/"), true
	}
	marker := "/" + root + "/"
	if idx := strings.Index(path, marker); idx >= 0 {
		return path[idx+len(marker):], true
	}
	return "", false
}

// place files a ref into the category by its path relative to the category
// root: no intervening directory means a root file, otherwise each segment
// becomes a folder, created once per pass.
func (c *classifier) place(kind Kind, ref FileRef, rel string) {
	cat := c.result.Categories[kind]
	segments := strings.Split(rel, "/")
	if len(segments) == 1 {
		cat.RootFiles = append(cat.RootFiles, ref)
		return
	}
	folder := c.ensureFolder(kind, cat, segments[:len(segments)-1])
	folder.Files = append(folder.Files, ref)
}

func (c *classifier) ensureFolder(kind Kind, cat *Category, segments []string) *Folder {
	arena := c.arena[kind]
	var parent *Folder
	key := ""
	for _, segment := range segments {
		if key == "" {
			key = segment
		} else {
			key = key + "/" + segment
		}
		folder, ok := arena[key]
		if !ok {
			folder = &Folder{Name: segment, Subfolders: map[string]*Folder{}}
			arena[key] = folder
			if parent == nil {
				if cat.Folders == nil {
					cat.Folders = map[string]*Folder{}
				}
				cat.Folders[segment] = folder
			} else {
				parent.Subfolders[segment] = folder
			}
		}
		parent = folder
	}
	return parent
}
