package organize

import (
	"github.com/jverhoeven/sortdir/pkg/models"
)

// Prompter decides whether to overwrite a colliding destination file. It is
// consulted only under models.PolicyInteractive, once per collision. A
// false answer falls back to creating a new copy.
//
// The CLI supplies a terminal prompter reading from stdin; headless callers
// such as the web layer never use the interactive policy.
type Prompter interface {
	ConfirmOverwrite(name string, category models.CategoryKey) (bool, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(name string, category models.CategoryKey) (bool, error)

func (f PrompterFunc) ConfirmOverwrite(name string, category models.CategoryKey) (bool, error) {
	return f(name, category)
}
