package classify

// Kind enumerates the fixed categories of the project tree. Each kind carries
// the convention it encodes: the directory it is rooted at, the extension it
// collects, and the defaults used when creating new entries in its scope.
type Kind int

const (
	KindTemplates Kind = iota
	KindLogic
	KindData
	KindStyle
)

// Kinds lists all category kinds in display order.
var Kinds = []Kind{KindTemplates, KindLogic, KindData, KindStyle}

// ConfigFileName is the project configuration file; it is listed outside any
// category.
const ConfigFileName = "scribe.json"

func (k Kind) Key() string {
	switch k {
	case KindTemplates:
		return "templates"
	case KindLogic:
		return "logic"
	case KindData:
		return "data"
	case KindStyle:
		return "style"
	default:
		return ""
	}
}

func (k Kind) Label() string {
	switch k {
	case KindTemplates:
		return "Templates"
	case KindLogic:
		return "Logic"
	case KindData:
		return "Data"
	case KindStyle:
		return "Style"
	default:
		return ""
	}
}

func (k Kind) Icon() string {
	switch k {
	case KindTemplates:
		return "◆"
	case KindLogic:
		return "ƒ"
	case KindData:
		return "▤"
	case KindStyle:
		return "✦"
	default:
		return ""
	}
}

// Root returns the directory the kind is rooted at. Templates have no root:
// template files are collected from anywhere in the tree.
func (k Kind) Root() string {
	switch k {
	case KindLogic:
		return "lib"
	case KindData:
		return "migrations"
	case KindStyle:
		return "static/css"
	default:
		return ""
	}
}

func (k Kind) Extension() string {
	switch k {
	case KindTemplates:
		return ".stpl"
	case KindLogic:
		return ".py"
	case KindData:
		return ".sql"
	case KindStyle:
		return ".css"
	default:
		return ""
	}
}

// DefaultPrefix is the path prefix pre-filled when creating a new entry
// scoped to the category.
func (k Kind) DefaultPrefix() string {
	root := k.Root()
	if root == "" {
		return ""
	}
	return root + "/"
}

// KindForKey resolves a persisted category key back to its kind.
func KindForKey(key string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}
