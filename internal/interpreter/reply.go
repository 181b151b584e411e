package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"gopkg.in/yaml.v3"
)

const TimeLayout = "2006-01-02 15:04:05"

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Replier answers a parse result with the reply configured for its intent.
type Replier struct {
	replies map[string]string
	now     func() time.Time
}

func NewReplier(replies map[string]string) *Replier {
	if replies == nil {
		replies = map[string]string{}
	}
	return &Replier{replies: replies, now: time.Now}
}

// LoadReplies reads the replies section of <path>/nlu.yaml. A model store without the
// file yields a Replier with no replies, so remote backends can run without one.
func LoadReplies(path string) (*Replier, error) {
	data, err := os.ReadFile(filepath.Join(path, ModelFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewReplier(nil), nil
		}
		return nil, fnerrors.NewModelLoadError(path, err.Error())
	}

	model := &Model{}
	if err := yaml.Unmarshal(data, model); err != nil {
		return nil, fnerrors.NewModelLoadError(path, err.Error())
	}
	return NewReplier(model.Replies), nil
}

// Reply renders the template of the result's intent. When the intent has no reply or
// a placeholder cannot be filled, the nlu_fallback reply is used instead. The second
// return value is false when neither exists.
func (r *Replier) Reply(result *Result) (string, bool) {
	if result != nil {
		if tmpl, ok := r.replies[result.Intent.Name]; ok {
			if reply, ok := r.render(tmpl, result); ok {
				return reply, true
			}
		}
	}

	fallback, ok := r.replies[FallbackIntent]
	return fallback, ok
}

func (r *Replier) render(tmpl string, result *Result) (string, bool) {
	filled := true
	reply := placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		if name == "time" {
			return r.now().Format(TimeLayout)
		}
		for _, entity := range result.Entities {
			if entity.Entity == name {
				return entity.Value
			}
		}
		filled = false
		return match
	})
	return reply, filled
}
